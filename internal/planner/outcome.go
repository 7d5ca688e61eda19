package planner

import (
	"time"

	"github.com/summitroutes/trekplan/internal/domain"
)

const (
	// LoginRedirect is where an unauthenticated submit sends the user.
	LoginRedirect = "/login?redirect=/custom-trip"
	// ProfileRedirect is where a successful submit sends the user.
	ProfileRedirect = "/profile"
	// ProfileRedirectDelay is how long the confirmation stays up.
	ProfileRedirectDelay = 3 * time.Second

	SessionExpiredMessage = "Your session has expired. Please sign in again."
	LoginRequiredMessage  = "Please sign in to submit your trip request. Your draft has been saved."
	SubmittedMessage      = "Your custom trip request has been submitted. Our team will contact you shortly."
)

type OutcomeStatus int

const (
	OutcomeSubmitted OutcomeStatus = iota
	OutcomeLoginRequired
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeLoginRequired:
		return "login_required"
	default:
		return "unknown"
	}
}

// SubmitOutcome is a non-error result of Submit. Failures are returned as
// errors; a sign-in requirement is an outcome because the draft was kept.
type SubmitOutcome struct {
	Status         OutcomeStatus
	Message        string
	Redirect       string
	RedirectAfter  time.Duration
	SessionExpired bool
	Receipt        *domain.SubmissionReceipt
}
