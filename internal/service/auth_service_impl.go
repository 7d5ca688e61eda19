package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/repository"
)

type authService struct {
	client   booking.Client
	sessions repository.AuthSessionRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewAuthService(client booking.Client, sessions repository.AuthSessionRepo, now func() time.Time, observers ...UseCaseObserver) AuthService {
	if now == nil {
		now = time.Now
	}
	return &authService{
		client:   client,
		sessions: sessions,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (session *domain.AuthSession, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "login",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	var resp *booking.LoginResponse
	resp, err = s.client.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, booking.ErrUnauthorized) {
			return nil, fmt.Errorf("invalid email or password: %w", err)
		}
		return nil, fmt.Errorf("signing in: %w", err)
	}

	session = &domain.AuthSession{
		Token:     resp.Token,
		UserName:  resp.UserName,
		UserEmail: domain.CoalesceStr(resp.UserEmail, email),
		CreatedAt: s.now().UTC(),
	}
	if err = s.sessions.Upsert(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.Delete(ctx)
}

func (s *authService) Current(ctx context.Context) (*domain.AuthSession, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotSignedIn
		}
		return nil, err
	}
	if session.Token == "" {
		return nil, ErrNotSignedIn
	}
	return session, nil
}

func (s *authService) IsAuthenticated(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

func (s *authService) Token(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if TokenExpired(session.Token, s.now()) {
		return "", ErrSessionExpired
	}
	return session.Token, nil
}

// TokenExpired reports whether token is a JWT whose exp claim is at or before
// now. The signature is not checked; the server remains the authority. Opaque
// (non-JWT) tokens never count as expired.
func TokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}
