package domain

import "time"

// StoredDraft is the persisted form of a TripDraft. The draft fields are
// flattened into the same JSON object as the flags.
type StoredDraft struct {
	TripDraft
	IsDraft             bool      `json:"isDraft"`
	IsSubmissionPending bool      `json:"isSubmissionPending"`
	LastSaved           time.Time `json:"lastSaved"`
	Step                int       `json:"step"`
}

// NewStoredDraft snapshots d for persistence.
func NewStoredDraft(d TripDraft, step int, pending bool, now time.Time) *StoredDraft {
	return &StoredDraft{
		TripDraft:           d.Clone(),
		IsDraft:             true,
		IsSubmissionPending: pending,
		LastSaved:           now.UTC(),
		Step:                step,
	}
}

// SubmissionReceipt is the local record of a trip request the backend accepted.
type SubmissionReceipt struct {
	ID           string
	Destination  string
	StartDate    *time.Time
	Duration     int
	GroupSize    int
	BudgetAmount int
	Message      string
	SubmittedAt  time.Time
}
