package planner

import (
	"errors"

	"github.com/summitroutes/trekplan/internal/booking"
)

var (
	// ErrSubmitted is returned by mutating calls once the trip was submitted.
	ErrSubmitted = errors.New("trip request already submitted")

	// ErrDecisionPending is returned while a resume offer awaits Resolve.
	ErrDecisionPending = errors.New("resolve the saved draft first")

	// ErrBusy is returned while a submission is in flight.
	ErrBusy = errors.New("submission in progress")

	// ErrNotOnReviewStep is returned by Submit outside the review step.
	ErrNotOnReviewStep = errors.New("submit is only available on the review step")

	// ErrInvalidChoice is returned by Resolve for a choice the current phase does not offer.
	ErrInvalidChoice = errors.New("choice not available")
)

// GenericSubmitFailure is shown when the server gave no usable message.
const GenericSubmitFailure = "Failed to submit trip request. Please try again."

// SubmissionError wraps a failed submission with the message to show the user.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// submissionMessage extracts the server's message, falling back to the generic text.
func submissionMessage(err error) string {
	var apiErr *booking.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, booking.ErrUnavailable):
		return "Could not reach the booking service. Check your connection and try again."
	case errors.Is(err, booking.ErrTimeout):
		return "The booking service took too long to respond. Please try again."
	}
	return GenericSubmitFailure
}
