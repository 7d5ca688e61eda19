package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/summitroutes/trekplan/internal/db"
	"github.com/summitroutes/trekplan/internal/domain"
)

// SQLiteAuthSessionRepo implements AuthSessionRepo using a SQLite database.
// The table holds at most one row.
type SQLiteAuthSessionRepo struct {
	db db.DBTX
}

// NewSQLiteAuthSessionRepo creates a new SQLiteAuthSessionRepo.
func NewSQLiteAuthSessionRepo(conn db.DBTX) *SQLiteAuthSessionRepo {
	return &SQLiteAuthSessionRepo{db: conn}
}

func (r *SQLiteAuthSessionRepo) Get(ctx context.Context) (*domain.AuthSession, error) {
	query := `SELECT token, user_name, user_email, created_at FROM auth_session WHERE id = 'default'`
	var s domain.AuthSession
	var createdAt string
	err := r.db.QueryRowContext(ctx, query).Scan(&s.Token, &s.UserName, &s.UserEmail, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("auth session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning auth session: %w", err)
	}
	s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &s, nil
}

func (r *SQLiteAuthSessionRepo) Upsert(ctx context.Context, s *domain.AuthSession) error {
	query := `INSERT OR REPLACE INTO auth_session (id, token, user_name, user_email, created_at)
		VALUES ('default', ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.Token,
		s.UserName,
		s.UserEmail,
		s.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting auth session: %w", err)
	}
	return nil
}

func (r *SQLiteAuthSessionRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth_session`); err != nil {
		return fmt.Errorf("deleting auth session: %w", err)
	}
	return nil
}
