package cli

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/summitroutes/trekplan/internal/cli/formatter"
	"github.com/summitroutes/trekplan/internal/domain"
	"github.com/summitroutes/trekplan/internal/planner"
)

type wizardMode int

const (
	modeResume wizardMode = iota
	modeStep
	modeSubmitting
	modeDone
)

// stepCompleteMsg is sent when the active step form is completed.
type stepCompleteMsg struct{}

// resumeChosenMsg carries the answer to the saved-draft offer.
type resumeChosenMsg struct {
	choice planner.ResumeChoice
}

// submitResultMsg carries the result of a Submit (or Resolve with
// ChoiceSubmitNow) that ran off the UI goroutine.
type submitResultMsg struct {
	outcome *planner.SubmitOutcome
	err     error
}

// redirectMsg fires once the confirmation has been shown long enough.
type redirectMsg struct{}

// wizardModel drives a planner.Controller through the six step forms. While
// a submission is in flight the controller belongs to the submit command and
// the model only renders cached state.
type wizardModel struct {
	ctx  context.Context
	ctrl *planner.Controller
	now  func() time.Time

	mode    wizardMode
	step    int
	catalog []domain.Destination

	current *stepForm
	changes []domain.Change

	resume *huh.Form
	choice planner.ResumeChoice
	saved  domain.StoredDraft
	phase  planner.ResumePhase

	spinner  spinner.Model
	notice   string
	outcome  *planner.SubmitOutcome
	err      error
	quitting bool
}

// newWizardModel expects ctrl to have been initialized; phase is what
// Initialize returned.
func newWizardModel(ctx context.Context, ctrl *planner.Controller, phase planner.ResumePhase, now func() time.Time) *wizardModel {
	if now == nil {
		now = time.Now
	}
	m := &wizardModel{
		ctx:     ctx,
		ctrl:    ctrl,
		now:     now,
		phase:   phase,
		catalog: ctrl.Destinations(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(formatter.StylePurple),
		),
	}
	if phase.Offering() {
		m.mode = modeResume
		m.saved, _ = ctrl.SavedDraft()
		m.resume = m.buildResumeForm()
	} else {
		m.mode = modeStep
		m.buildStep()
	}
	return m
}

func (m *wizardModel) Init() tea.Cmd {
	if m.mode == modeResume {
		return m.resume.Init()
	}
	return m.current.form.Init()
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, m.saveAndQuit()
		case tea.KeyEsc:
			switch m.mode {
			case modeStep:
				return m, m.back()
			case modeResume, modeDone:
				m.quitting = true
				return m, tea.Quit
			}
		case tea.KeyEnter:
			if m.mode == modeDone {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case stepCompleteMsg:
		return m, m.completeStep()

	case resumeChosenMsg:
		return m, m.resolve(msg.choice)

	case submitResultMsg:
		return m, m.handleSubmitResult(msg)

	case redirectMsg:
		m.quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		if m.mode != modeSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	switch m.mode {
	case modeResume:
		return m, m.updateResumeForm(msg)
	case modeStep:
		return m, m.updateStepForm(msg)
	}
	return m, nil
}

func (m *wizardModel) updateResumeForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.resume.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.resume = f
	}
	if m.resume.State == huh.StateCompleted {
		choice := m.choice
		return tea.Batch(cmd, func() tea.Msg { return resumeChosenMsg{choice: choice} })
	}
	return cmd
}

func (m *wizardModel) updateStepForm(msg tea.Msg) tea.Cmd {
	form, cmd := m.current.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.current.form = f
	}
	if m.current.form.State == huh.StateCompleted {
		return tea.Batch(cmd, func() tea.Msg { return stepCompleteMsg{} })
	}
	return cmd
}

// ── Transitions ──────────────────────────────────────────────────────────────

func (m *wizardModel) resolve(choice planner.ResumeChoice) tea.Cmd {
	if choice == planner.ChoiceSubmitNow {
		m.mode = modeSubmitting
		m.step = domain.LastStep
		ctx, ctrl := m.ctx, m.ctrl
		return tea.Batch(m.spinner.Tick, func() tea.Msg {
			out, err := ctrl.Resolve(ctx, choice)
			return submitResultMsg{outcome: out, err: err}
		})
	}

	if _, err := m.ctrl.Resolve(m.ctx, choice); err != nil {
		m.err = err
		m.quitting = true
		return tea.Quit
	}
	m.phase = m.ctrl.Phase()
	m.mode = modeStep
	if choice == planner.ChoiceDiscard {
		m.notice = formatter.Notice(formatter.NoticeInfo, "Saved draft discarded. Starting fresh.")
	}
	return m.buildStep()
}

func (m *wizardModel) completeStep() tea.Cmd {
	m.notice = ""
	m.flush()

	if m.step < domain.LastStep {
		if err := m.ctrl.Advance(); err != nil {
			m.notice = describeError(err)
		}
		return m.buildStep()
	}

	m.mode = modeSubmitting
	ctx, ctrl := m.ctx, m.ctrl
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := ctrl.Submit(ctx)
		return submitResultMsg{outcome: out, err: err}
	})
}

func (m *wizardModel) handleSubmitResult(msg submitResultMsg) tea.Cmd {
	if msg.err != nil {
		m.mode = modeStep
		m.notice = describeError(msg.err)
		return m.buildStep()
	}

	m.outcome = msg.outcome
	m.mode = modeDone
	if msg.outcome.Status == planner.OutcomeSubmitted {
		return tea.Tick(msg.outcome.RedirectAfter, func(time.Time) tea.Msg { return redirectMsg{} })
	}
	m.quitting = true
	return tea.Quit
}

// back keeps the edits made on the current form, then retreats. Esc on the
// first step leaves the wizard.
func (m *wizardModel) back() tea.Cmd {
	if m.step == domain.StepTrekDetails {
		return m.saveAndQuit()
	}
	m.notice = ""
	m.flush()
	m.ctrl.Retreat()
	return m.buildStep()
}

func (m *wizardModel) saveAndQuit() tea.Cmd {
	m.quitting = true
	if m.mode == modeSubmitting {
		return tea.Quit
	}
	if m.mode == modeStep {
		m.flush()
	}
	if m.ctrl.Touched() {
		if err := m.ctrl.SaveProgress(m.ctx); err != nil {
			m.err = err
		} else {
			m.notice = formatter.Notice(formatter.NoticeInfo, "Progress saved. Run `trekplan plan` to pick up where you left off.")
		}
	}
	return tea.Quit
}

func (m *wizardModel) buildStep() tea.Cmd {
	m.step = m.ctrl.Step()
	m.changes = nil
	m.current = stepViews[m.step].Build(m.ctrl.Draft(), m.catalog, m.collect)
	return m.current.form.Init()
}

// collect is the onInputChange callback for every step form.
func (m *wizardModel) collect(change domain.Change) {
	m.changes = append(m.changes, change)
}

// flush commits the active form and forwards its changes to the controller,
// but only when they alter the draft; an untouched form must not mark the
// draft dirty.
func (m *wizardModel) flush() {
	m.changes = nil
	m.current.commit()

	before := m.ctrl.Draft()
	after := before.Clone()
	for _, ch := range m.changes {
		domain.Apply(&after, ch)
	}
	if reflect.DeepEqual(before, after) {
		return
	}
	for _, ch := range m.changes {
		if err := m.ctrl.SetField(ch); err != nil {
			m.notice = describeError(err)
			return
		}
	}
}

func (m *wizardModel) buildResumeForm() *huh.Form {
	labels := map[planner.ResumeChoice]string{
		planner.ChoiceSubmitNow:   "Submit it now",
		planner.ChoiceReviewFirst: "Review it first",
		planner.ChoiceContinue:    "Continue where I left off",
		planner.ChoiceDiscard:     "Discard it and start over",
	}
	choices := m.phase.Choices()
	options := make([]huh.Option[planner.ResumeChoice], 0, len(choices))
	for _, c := range choices {
		options = append(options, huh.NewOption(labels[c], c))
	}
	m.choice = choices[0]

	title := "You have a saved trip request. Continue it?"
	if m.phase == planner.PhaseOfferingPendingSubmit {
		title = "Your trip request is ready to submit now that you are signed in."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[planner.ResumeChoice]().
				Title(title).
				Options(options...).
				Value(&m.choice),
		),
	).WithTheme(trekplanHuhTheme()).WithShowHelp(false)
}

// ── Rendering ────────────────────────────────────────────────────────────────

func (m *wizardModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Custom trip request"))
	b.WriteString("\n")

	switch m.mode {
	case modeResume:
		b.WriteString(formatter.RenderBox("Saved draft", formatter.DraftSummary(m.saved, m.catalog, m.now())))
		b.WriteString("\n\n")
		b.WriteString(m.resume.View())

	case modeStep:
		b.WriteString(formatter.RenderStepProgress(m.step, domain.StepCount))
		b.WriteString("\n")
		b.WriteString(formatter.Bold(stepViews[m.step].Title()))
		b.WriteString("\n\n")
		if m.current.header != "" {
			b.WriteString(m.current.header)
			b.WriteString("\n\n")
		}
		if !m.quitting {
			b.WriteString(m.current.form.View())
			b.WriteString("\n")
		}

	case modeSubmitting:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), formatter.Dim("Submitting your trip request..."))

	case modeDone:
		b.WriteString(outcomeNotice(m.outcome))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	if m.mode == modeStep && !m.quitting {
		b.WriteString("\n")
		b.WriteString(formatter.Dim("enter next · shift+tab previous field · esc previous step · ctrl+c save & quit"))
		b.WriteString("\n")
	}
	return b.String()
}

func outcomeNotice(out *planner.SubmitOutcome) string {
	if out == nil {
		return ""
	}
	if out.Status == planner.OutcomeSubmitted {
		return formatter.Notice(formatter.NoticeSuccess, out.Message) + "\n" +
			formatter.Dim("Opening your trip history...")
	}
	kind := formatter.NoticeWarning
	if out.SessionExpired {
		kind = formatter.NoticeError
	}
	return formatter.Notice(kind, out.Message) + "\n" +
		formatter.Dim("Run `trekplan login`, then `trekplan plan` to submit your saved request.")
}

// describeError renders wizard errors as notices. Validation problems are
// listed one per line.
func describeError(err error) string {
	var verr *domain.ValidationError
	var serr *planner.SubmissionError
	switch {
	case errors.As(err, &verr):
		lines := []string{formatter.Notice(formatter.NoticeWarning, "Please fix the following:")}
		for _, p := range verr.Problems {
			lines = append(lines, fmt.Sprintf("  • %s: %s", p.Field, p.Message))
		}
		return strings.Join(lines, "\n")
	case errors.As(err, &serr):
		return formatter.Notice(formatter.NoticeError, serr.Message)
	default:
		return formatter.Notice(formatter.NoticeError, err.Error())
	}
}
