package service

import (
	"context"
	"errors"

	"github.com/summitroutes/trekplan/internal/domain"
)

var (
	// ErrNotSignedIn is returned when no auth session is stored.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrSessionExpired is returned when the stored token has passed its expiry.
	ErrSessionExpired = errors.New("session expired")
)

// CatalogService resolves the destinations offered by the trek details step.
type CatalogService interface {
	// Destinations never fails: fetch errors degrade to the fallback list.
	Destinations(ctx context.Context) []domain.Destination
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.AuthSession, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*domain.AuthSession, error)
	IsAuthenticated(ctx context.Context) bool
	Token(ctx context.Context) (string, error)
}

type HistoryService interface {
	Record(ctx context.Context, d domain.TripDraft, destinationLabel, message string) (*domain.SubmissionReceipt, error)
	Recent(ctx context.Context, limit int) ([]*domain.SubmissionReceipt, error)
}
