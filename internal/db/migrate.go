package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateLegacyFitnessLevel(db); err != nil {
		return fmt.Errorf("normalizing stored fitness levels: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS draft_slots (
		slot_key   TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		saved_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS auth_session (
		id         TEXT PRIMARY KEY DEFAULT 'default' CHECK(id = 'default'),
		token      TEXT NOT NULL,
		user_name  TEXT NOT NULL DEFAULT '',
		user_email TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS trip_submissions (
		id            TEXT PRIMARY KEY,
		destination   TEXT NOT NULL,
		start_date    TEXT,
		duration      INTEGER NOT NULL DEFAULT 0,
		group_size    INTEGER NOT NULL DEFAULT 1,
		budget_amount INTEGER NOT NULL DEFAULT 0,
		message       TEXT NOT NULL DEFAULT '',
		submitted_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trip_submissions_submitted ON trip_submissions(submitted_at)`,
}

// migrateLegacyFitnessLevel rewrites drafts saved with the retired "average"
// fitness level to its canonical replacement. Corrupt payloads are left for
// the draft store to discard on load.
func migrateLegacyFitnessLevel(db *sql.DB) error {
	_, err := db.Exec(`UPDATE draft_slots
		SET payload = json_set(payload, '$.fitnessLevel', 'moderate')
		WHERE json_valid(payload) AND json_extract(payload, '$.fitnessLevel') = 'average'`)
	return err
}
