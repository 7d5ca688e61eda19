package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/summitroutes/trekplan/internal/db"
	"github.com/summitroutes/trekplan/internal/domain"
)

// DraftSlotKey is the single well-known slot the wizard draft lives under.
const DraftSlotKey = "pendingCustomTrip"

// SQLiteDraftStore keeps exactly one serialized StoredDraft. Writes overwrite
// the slot; concurrent writers are last-writer-wins.
type SQLiteDraftStore struct {
	db db.DBTX
}

// NewSQLiteDraftStore creates a new SQLiteDraftStore.
func NewSQLiteDraftStore(conn db.DBTX) *SQLiteDraftStore {
	return &SQLiteDraftStore{db: conn}
}

func (s *SQLiteDraftStore) Save(ctx context.Context, rec *domain.StoredDraft) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	query := `INSERT OR REPLACE INTO draft_slots (slot_key, payload, saved_at) VALUES (?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, DraftSlotKey, string(payload), rec.LastSaved.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Load returns the stored draft, or nil when the slot is empty. A payload
// that no longer decodes is deleted and reported as absent.
func (s *SQLiteDraftStore) Load(ctx context.Context) (*domain.StoredDraft, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM draft_slots WHERE slot_key = ?`, DraftSlotKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading draft: %w", err)
	}

	// Decode over the defaults so fields added after the draft was saved
	// come back with safe values.
	rec := domain.StoredDraft{TripDraft: domain.DefaultTripDraft()}
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		if clearErr := s.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}
	return &rec, nil
}

func (s *SQLiteDraftStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM draft_slots WHERE slot_key = ?`, DraftSlotKey); err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}
