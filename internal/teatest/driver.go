// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes every returned Cmd inline, feeding the resulting messages back
// into the model until nothing is left. Commands that block on timers
// (cursor blink, spinner ticks, delayed redirects) are abandoned after a
// short timeout so tests stay fast and deterministic.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many follow-up commands one message may trigger.
const maxDepth = 100

// defaultCmdTimeout separates instant commands (message factories, local
// storage calls) from timer-driven ones, which block for 80ms or more.
const defaultCmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg is produced. The runtime normally
	// swallows it, so the driver records it instead.
	Quitting bool

	// Delivered lists the type of every message fed to Update, in order.
	Delivered []string

	cmdTimeout time.Duration
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.deliver(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout changes how long a command may block before it is skipped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) { d.cmdTimeout = timeout }
}

// New wraps model. Call DrainInit to run the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, cmdTimeout: defaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and drains the resulting commands. It is a no-op once
// the model has quit.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.run(d.deliver(msg), 0)
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEnter})
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyEsc})
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func (d *Driver) PressTab() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyTab})
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyUp})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyDown})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// RequireViewContains fails the test now when the view lacks want.
func (d *Driver) RequireViewContains(want string) {
	d.T.Helper()
	if view := d.View(); !strings.Contains(view, want) {
		d.T.Fatalf("view does not contain %q:\n%s", want, view)
	}
}

// SawMessage reports whether a message of the given type name (as printed
// by %T, e.g. "cli.stepCompleteMsg") has been delivered.
func (d *Driver) SawMessage(typeName string) bool {
	for _, t := range d.Delivered {
		if t == typeName {
			return true
		}
	}
	return false
}

func (d *Driver) deliver(msg tea.Msg) tea.Cmd {
	d.Delivered = append(d.Delivered, fmt.Sprintf("%T", msg))
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: gave up after %d chained commands", maxDepth)
		return
	}

	msg := d.exec(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.deliver(m)
	default:
		if isBlink(msg) || d.Quitting {
			return
		}
		d.run(d.deliver(msg), depth+1)
	}
}

// exec runs cmd with a deadline and returns nil when it does not finish.
func (d *Driver) exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(d.cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages from bubbles, which
// chain into blocking timers.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
