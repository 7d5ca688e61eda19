package repository

import (
	"context"
	"errors"

	"github.com/summitroutes/trekplan/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type AuthSessionRepo interface {
	Get(ctx context.Context) (*domain.AuthSession, error)
	Upsert(ctx context.Context, s *domain.AuthSession) error
	Delete(ctx context.Context) error
}

type SubmissionRepo interface {
	Create(ctx context.Context, r *domain.SubmissionReceipt) error
	ListRecent(ctx context.Context, limit int) ([]*domain.SubmissionReceipt, error)
}
