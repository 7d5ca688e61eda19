package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/repository"
)

type historyService struct {
	submissions repository.SubmissionRepo
	now         func() time.Time
}

func NewHistoryService(submissions repository.SubmissionRepo, now func() time.Time) HistoryService {
	if now == nil {
		now = time.Now
	}
	return &historyService{submissions: submissions, now: now}
}

func (s *historyService) Record(ctx context.Context, d domain.TripDraft, destinationLabel, message string) (*domain.SubmissionReceipt, error) {
	rec := &domain.SubmissionReceipt{
		ID:           uuid.New().String(),
		Destination:  domain.CoalesceStr(destinationLabel, d.Destination),
		StartDate:    d.Clone().StartDate,
		Duration:     d.Duration,
		GroupSize:    d.GroupSize,
		BudgetAmount: d.BudgetAmount,
		Message:      message,
		SubmittedAt:  s.now().UTC(),
	}
	if err := s.submissions.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *historyService) Recent(ctx context.Context, limit int) ([]*domain.SubmissionReceipt, error) {
	return s.submissions.ListRecent(ctx, limit)
}
