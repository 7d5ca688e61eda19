package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/summitroutes/trekplan/internal/db"
	"github.com/summitroutes/trekplan/internal/domain"
)

// SQLiteSubmissionRepo implements SubmissionRepo using a SQLite database.
type SQLiteSubmissionRepo struct {
	db db.DBTX
}

// NewSQLiteSubmissionRepo creates a new SQLiteSubmissionRepo.
func NewSQLiteSubmissionRepo(conn db.DBTX) *SQLiteSubmissionRepo {
	return &SQLiteSubmissionRepo{db: conn}
}

func (r *SQLiteSubmissionRepo) Create(ctx context.Context, rec *domain.SubmissionReceipt) error {
	query := `INSERT INTO trip_submissions (id, destination, start_date, duration, group_size,
		budget_amount, message, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Destination,
		nullableTimeToString(rec.StartDate, dateLayout),
		rec.Duration,
		rec.GroupSize,
		rec.BudgetAmount,
		rec.Message,
		rec.SubmittedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting trip submission: %w", err)
	}
	return nil
}

// ListRecent returns up to limit receipts, newest first. A non-positive
// limit returns everything.
func (r *SQLiteSubmissionRepo) ListRecent(ctx context.Context, limit int) ([]*domain.SubmissionReceipt, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT id, destination, start_date, duration, group_size, budget_amount, message, submitted_at
		FROM trip_submissions ORDER BY submitted_at DESC, id LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing trip submissions: %w", err)
	}
	defer rows.Close()

	var out []*domain.SubmissionReceipt
	for rows.Next() {
		var (
			rec         domain.SubmissionReceipt
			startDate   sql.NullString
			submittedAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Destination, &startDate, &rec.Duration, &rec.GroupSize,
			&rec.BudgetAmount, &rec.Message, &submittedAt); err != nil {
			return nil, fmt.Errorf("scanning trip submission: %w", err)
		}
		rec.StartDate = parseNullableTime(startDate, dateLayout)
		rec.SubmittedAt, _ = time.Parse(time.RFC3339, submittedAt)
		out = append(out, &rec)
	}
	return out, rows.Err()
}
