package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/summitroutes/trekplan/internal/domain"
	"golang.org/x/time/rate"
)

// Operation names reported to the Observer.
const (
	OpListListings = "list_listings"
	OpSubmitTrip   = "submit_custom_trip"
	OpLogin        = "login"
)

// Client is the subset of the trekking platform REST API the planner uses.
type Client interface {
	// ListListings returns the published treks.
	ListListings(ctx context.Context) ([]Listing, error)

	// SubmitCustomTrip posts a complete draft on behalf of the bearer token.
	SubmitCustomTrip(ctx context.Context, token string, draft domain.TripDraft) (*SubmitResponse, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
}

// httpClient implements Client over JSON/HTTP.
type httpClient struct {
	cfg      Config
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
}

// NewClient creates a Client that talks to cfg.Endpoint.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		limiter:  rate.NewLimiter(limit, 1),
		observer: observer,
	}
}

func (c *httpClient) ListListings(ctx context.Context) ([]Listing, error) {
	env, err := c.call(ctx, OpListListings, http.MethodGet, "/listings", "", nil)
	if err != nil {
		return nil, err
	}
	var listings []Listing
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &listings); err != nil {
			return nil, fmt.Errorf("decoding listings: %w", err)
		}
	}
	return listings, nil
}

func (c *httpClient) SubmitCustomTrip(ctx context.Context, token string, draft domain.TripDraft) (*SubmitResponse, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	env, err := c.call(ctx, OpSubmitTrip, http.MethodPost, "/trips/custom", token, draft)
	if err != nil {
		return nil, err
	}
	return &SubmitResponse{Success: env.Success, Message: env.Message}, nil
}

func (c *httpClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	env, err := c.call(ctx, OpLogin, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return nil, &APIError{Status: http.StatusOK, Message: "login response did not include a token"}
	}
	return &LoginResponse{Token: data.Token, UserName: data.User.Name, UserEmail: data.User.Email}, nil
}

// call performs one logical request with the configured timeout and retry
// budget. GETs are retried on connection failures and 5xx responses. Other
// methods are retried on connection failures only, since a 5xx from a proxy
// may follow a request the backend already accepted. Every attempt carries
// the same request id.
func (c *httpClient) call(ctx context.Context, op, method, path, token string, body any) (*envelope, error) {
	start := time.Now()
	retry := retryable
	if method != http.MethodGet {
		retry = isConnectionError
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
	}

	requestID := uuid.New().String()
	attempts := 1 + c.cfg.MaxRetries
	var (
		lastErr error
		status  int
		tried   int
	)

	for i := 0; i < attempts; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrTimeout, err)
			break
		}
		tried++
		var env *envelope
		env, status, lastErr = c.doRequest(ctx, method, path, token, requestID, payload)
		if lastErr == nil {
			c.report(op, status, start, tried, nil)
			return env, nil
		}
		if ctx.Err() != nil || !retry(lastErr) {
			break
		}
	}

	err := c.finalError(ctx, lastErr, retry)
	c.report(op, status, start, tried, err)
	return nil, err
}

func (c *httpClient) finalError(ctx context.Context, lastErr error, retry func(error) bool) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ErrTimeout
	case ctx.Err() != nil:
		return ctx.Err()
	case !retry(lastErr):
		return lastErr
	case isConnectionError(lastErr):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
	}
}

func (c *httpClient) doRequest(ctx context.Context, method, path, token, requestID string, payload []byte) (*envelope, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, resp.StatusCode, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: env.Message}
	case decodeErr != nil:
		return nil, resp.StatusCode, fmt.Errorf("decoding response: %w", decodeErr)
	case !env.Success:
		return nil, resp.StatusCode, &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &env, resp.StatusCode, nil
}

func (c *httpClient) report(op string, status int, start time.Time, attempts int, err error) {
	c.observer.OnCallComplete(CallEvent{
		Operation: op,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	if err == nil || errors.Is(err, ErrUnauthorized) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	return isConnectionError(err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.As(err, &apiErr):
		return fmt.Sprintf("HTTP_%d", apiErr.Status)
	default:
		return "UNKNOWN"
	}
}
