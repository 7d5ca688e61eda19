package service

import (
	"context"
	"sync"
	"testing"

	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/repository"
	"github.com/summitroutes/trekplan/internal/testutil"
)

func setupRepos(t *testing.T) (*repository.SQLiteAuthSessionRepo, *repository.SQLiteSubmissionRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteAuthSessionRepo(database), repository.NewSQLiteSubmissionRepo(database)
}

// stubClient is a booking.Client with canned responses.
type stubClient struct {
	listings   []booking.Listing
	listErr    error
	login      *booking.LoginResponse
	loginErr   error
	loginCalls int
}

func (c *stubClient) ListListings(context.Context) ([]booking.Listing, error) {
	return c.listings, c.listErr
}

func (c *stubClient) SubmitCustomTrip(context.Context, string, domain.TripDraft) (*booking.SubmitResponse, error) {
	return &booking.SubmitResponse{Success: true}, nil
}

func (c *stubClient) Login(context.Context, string, string) (*booking.LoginResponse, error) {
	c.loginCalls++
	return c.login, c.loginErr
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}
