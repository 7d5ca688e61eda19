package planner

// ResumePhase is the state of the saved-draft decision made on startup.
type ResumePhase int

const (
	// PhaseNoDraft: nothing was stored; the wizard starts from defaults.
	PhaseNoDraft ResumePhase = iota
	// PhaseOfferingResume: a stored draft exists; continue or discard.
	PhaseOfferingResume
	// PhaseOfferingPendingSubmit: a signed-in user has a draft that was
	// interrupted by sign-in; submit now, review first, or discard.
	PhaseOfferingPendingSubmit
	// PhaseResolved: the offer was answered.
	PhaseResolved
)

func (p ResumePhase) String() string {
	switch p {
	case PhaseNoDraft:
		return "no_draft"
	case PhaseOfferingResume:
		return "offering_resume"
	case PhaseOfferingPendingSubmit:
		return "offering_pending_submit"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Offering reports whether the phase is waiting for a ResumeChoice.
func (p ResumePhase) Offering() bool {
	return p == PhaseOfferingResume || p == PhaseOfferingPendingSubmit
}

// ResumeChoice answers a resume offer.
type ResumeChoice int

const (
	ChoiceSubmitNow ResumeChoice = iota
	ChoiceReviewFirst
	ChoiceContinue
	ChoiceDiscard
)

func (c ResumeChoice) String() string {
	switch c {
	case ChoiceSubmitNow:
		return "submit_now"
	case ChoiceReviewFirst:
		return "review_first"
	case ChoiceContinue:
		return "continue"
	case ChoiceDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// Choices lists the answers phase accepts, in display order.
func (p ResumePhase) Choices() []ResumeChoice {
	switch p {
	case PhaseOfferingPendingSubmit:
		return []ResumeChoice{ChoiceSubmitNow, ChoiceReviewFirst, ChoiceDiscard}
	case PhaseOfferingResume:
		return []ResumeChoice{ChoiceContinue, ChoiceDiscard}
	default:
		return nil
	}
}
