// Package planner holds the UI-independent custom trip wizard: step
// navigation, draft persistence, the saved-draft resume decision and
// submission.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/summitroutes/trekplan/internal/booking"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/service"
)

// DraftStore persists the single in-progress draft.
type DraftStore interface {
	Save(ctx context.Context, rec *domain.StoredDraft) error
	// Load returns (nil, nil) when nothing usable is stored.
	Load(ctx context.Context) (*domain.StoredDraft, error)
	Clear(ctx context.Context) error
}

// Submitter sends a complete draft to the backend.
type Submitter interface {
	SubmitCustomTrip(ctx context.Context, token string, draft domain.TripDraft) (*booking.SubmitResponse, error)
}

// Authenticator supplies the bearer token. Token fails with
// service.ErrNotSignedIn or service.ErrSessionExpired when there is none.
type Authenticator interface {
	Token(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
}

// Catalog lists the selectable destinations.
type Catalog interface {
	Destinations(ctx context.Context) []domain.Destination
}

// History records accepted submissions.
type History interface {
	Record(ctx context.Context, d domain.TripDraft, destinationLabel, message string) (*domain.SubmissionReceipt, error)
}

type Deps struct {
	Store     DraftStore
	Submitter Submitter
	Auth      Authenticator
	Catalog   Catalog
	History   History // optional
	Logger    *slog.Logger
	Now       func() time.Time
}

// Controller owns the draft and wizard state. It is not safe for concurrent
// use: callers run Submit off the UI goroutine and leave the controller alone
// until it returns.
type Controller struct {
	deps Deps

	draft     domain.TripDraft
	step      int
	loading   bool
	submitted bool
	touched   bool
	pending   bool

	phase   ResumePhase
	saved   *domain.StoredDraft
	catalog []domain.Destination
}

func New(deps Deps) *Controller {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{
		deps:    deps,
		draft:   domain.DefaultTripDraft(),
		catalog: domain.FallbackDestinations(),
	}
}

// Initialize resets the wizard, loads the catalog and inspects the draft
// store. It makes no changes to storage; the returned phase says whether a
// Resolve call is expected.
func (c *Controller) Initialize(ctx context.Context) (ResumePhase, error) {
	c.draft = domain.DefaultTripDraft()
	c.step = domain.StepTrekDetails
	c.loading = false
	c.submitted = false
	c.touched = false
	c.pending = false
	c.saved = nil
	c.phase = PhaseNoDraft

	if c.deps.Catalog != nil {
		if dests := c.deps.Catalog.Destinations(ctx); len(dests) > 0 {
			c.catalog = dests
		}
	}

	saved, err := c.deps.Store.Load(ctx)
	if err != nil {
		return PhaseNoDraft, fmt.Errorf("loading saved draft: %w", err)
	}
	if saved == nil || !(saved.IsDraft || saved.IsSubmissionPending) {
		return c.phase, nil
	}

	c.saved = saved
	if saved.IsSubmissionPending && c.authenticated(ctx) {
		c.phase = PhaseOfferingPendingSubmit
	} else {
		c.phase = PhaseOfferingResume
	}
	c.deps.Logger.Debug("draft_found",
		"phase", c.phase.String(),
		"pending", saved.IsSubmissionPending,
		"step", saved.Step,
		"last_saved", saved.LastSaved,
	)
	return c.phase, nil
}

// Resolve answers the resume offer made by Initialize. ChoiceSubmitNow
// returns the Submit result; the other choices return a nil outcome.
func (c *Controller) Resolve(ctx context.Context, choice ResumeChoice) (*SubmitOutcome, error) {
	if !c.choiceAllowed(choice) {
		return nil, fmt.Errorf("%w: %s during %s", ErrInvalidChoice, choice, c.phase)
	}
	c.deps.Logger.Debug("resume_resolved", "phase", c.phase.String(), "choice", choice.String())

	saved := c.saved
	switch choice {
	case ChoiceDiscard:
		if err := c.deps.Store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("discarding saved draft: %w", err)
		}
		c.resolve()
		return nil, nil

	case ChoiceContinue:
		c.restore(saved, saved.Step)
		c.pending = saved.IsSubmissionPending
		c.resolve()
		return nil, nil

	case ChoiceReviewFirst:
		c.restore(saved, domain.LastStep)
		rec := domain.NewStoredDraft(c.draft, c.step, false, c.deps.Now())
		if err := c.deps.Store.Save(ctx, rec); err != nil {
			return nil, fmt.Errorf("clearing pending flag: %w", err)
		}
		c.resolve()
		return nil, nil

	case ChoiceSubmitNow:
		c.restore(saved, domain.LastStep)
		c.pending = true
		c.resolve()
		return c.Submit(ctx)
	}
	return nil, ErrInvalidChoice
}

// SavedDraft returns the stored record found by Initialize, if any.
func (c *Controller) SavedDraft() (domain.StoredDraft, bool) {
	if c.saved == nil {
		return domain.StoredDraft{}, false
	}
	out := *c.saved
	out.TripDraft = c.saved.TripDraft.Clone()
	return out, true
}

// SetField applies one typed field write and recomputes derived fields.
func (c *Controller) SetField(change domain.Change) error {
	if c.submitted {
		return ErrSubmitted
	}
	if c.phase.Offering() {
		return ErrDecisionPending
	}
	domain.Apply(&c.draft, change)
	c.touched = true
	c.pending = false
	return nil
}

// Advance validates only the current step and moves forward on success.
// A failed check returns *domain.ValidationError and leaves the step as is.
func (c *Controller) Advance() error {
	if err := c.navigable(); err != nil {
		return err
	}
	if err := domain.ValidateStep(c.draft, c.step); err != nil {
		return err
	}
	c.step = min(c.step+1, domain.LastStep)
	return nil
}

// Retreat moves back one step without validation. It reports whether the
// step changed.
func (c *Controller) Retreat() bool {
	if c.navigable() != nil || c.step == domain.StepTrekDetails {
		return false
	}
	c.step--
	return true
}

// Submit sends the draft. Preconditions are the review step and a complete
// draft. Without a usable session the draft is saved as pending and a
// login-required outcome is returned instead of calling the backend.
func (c *Controller) Submit(ctx context.Context) (*SubmitOutcome, error) {
	if err := c.navigable(); err != nil {
		return nil, err
	}
	if c.step != domain.LastStep {
		return nil, ErrNotOnReviewStep
	}
	if err := domain.ValidateAll(c.draft); err != nil {
		return nil, err
	}

	if c.deps.Auth == nil {
		return c.requireLogin(ctx, false)
	}
	token, err := c.deps.Auth.Token(ctx)
	if err != nil {
		expired := errors.Is(err, service.ErrSessionExpired)
		if !expired && !errors.Is(err, service.ErrNotSignedIn) {
			return nil, fmt.Errorf("reading session: %w", err)
		}
		return c.requireLogin(ctx, expired)
	}

	c.loading = true
	defer func() { c.loading = false }()

	resp, err := c.deps.Submitter.SubmitCustomTrip(ctx, token, c.draft.Clone())
	if err != nil {
		if errors.Is(err, booking.ErrUnauthorized) {
			if lerr := c.deps.Auth.Logout(ctx); lerr != nil {
				c.deps.Logger.Warn("logout_failed", "error", lerr)
			}
			return c.requireLogin(ctx, true)
		}
		c.deps.Logger.Warn("submit_failed", "error", err)
		return nil, &SubmissionError{Message: submissionMessage(err), Err: err}
	}
	if resp == nil || !resp.Success {
		msg := GenericSubmitFailure
		if resp != nil {
			msg = domain.CoalesceStr(resp.Message, msg)
		}
		return nil, &SubmissionError{Message: msg}
	}

	var receipt *domain.SubmissionReceipt
	if c.deps.History != nil {
		receipt, err = c.deps.History.Record(ctx, c.draft, c.draft.DestinationLabel(c.catalog), resp.Message)
		if err != nil {
			c.deps.Logger.Warn("history_record_failed", "error", err)
		}
	}
	if err := c.deps.Store.Clear(ctx); err != nil {
		c.deps.Logger.Warn("draft_clear_failed", "error", err)
	}
	c.submitted = true
	c.pending = false

	return &SubmitOutcome{
		Status:        OutcomeSubmitted,
		Message:       domain.CoalesceStr(resp.Message, SubmittedMessage),
		Redirect:      ProfileRedirect,
		RedirectAfter: ProfileRedirectDelay,
		Receipt:       receipt,
	}, nil
}

// SaveProgress persists the draft at the current step. It does nothing once
// submitted, before any edit, or while a resume offer is open.
func (c *Controller) SaveProgress(ctx context.Context) error {
	if c.submitted || !c.touched || c.phase.Offering() {
		return nil
	}
	rec := domain.NewStoredDraft(c.draft, c.step, c.pending, c.deps.Now())
	if err := c.deps.Store.Save(ctx, rec); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() domain.TripDraft { return c.draft.Clone() }

func (c *Controller) Step() int                          { return c.step }
func (c *Controller) Loading() bool                      { return c.loading }
func (c *Controller) Submitted() bool                    { return c.submitted }
func (c *Controller) Phase() ResumePhase                 { return c.phase }
func (c *Controller) Destinations() []domain.Destination { return c.catalog }

// Touched reports whether the draft was edited or restored since Initialize.
func (c *Controller) Touched() bool { return c.touched && !c.submitted }

func (c *Controller) requireLogin(ctx context.Context, expired bool) (*SubmitOutcome, error) {
	rec := domain.NewStoredDraft(c.draft, domain.LastStep, true, c.deps.Now())
	if err := c.deps.Store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving draft before sign-in: %w", err)
	}
	c.pending = true
	c.touched = true

	out := &SubmitOutcome{
		Status:         OutcomeLoginRequired,
		Message:        LoginRequiredMessage,
		Redirect:       LoginRedirect,
		SessionExpired: expired,
	}
	if expired {
		out.Message = SessionExpiredMessage
	}
	return out, nil
}

func (c *Controller) restore(saved *domain.StoredDraft, step int) {
	c.draft = saved.TripDraft.Clone()
	// Clamp only; a stored amount inside its band is kept.
	domain.Derive(&c.draft, "")
	c.step = max(domain.StepTrekDetails, min(step, domain.LastStep))
	c.touched = true
}

func (c *Controller) resolve() {
	c.phase = PhaseResolved
	c.saved = nil
}

func (c *Controller) choiceAllowed(choice ResumeChoice) bool {
	for _, allowed := range c.phase.Choices() {
		if allowed == choice {
			return true
		}
	}
	return false
}

func (c *Controller) authenticated(ctx context.Context) bool {
	if c.deps.Auth == nil {
		return false
	}
	_, err := c.deps.Auth.Token(ctx)
	return err == nil
}

func (c *Controller) navigable() error {
	switch {
	case c.submitted:
		return ErrSubmitted
	case c.loading:
		return ErrBusy
	case c.phase.Offering():
		return ErrDecisionPending
	}
	return nil
}
