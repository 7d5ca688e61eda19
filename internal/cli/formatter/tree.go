package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StepState is where a wizard step stands relative to the saved position.
type StepState int

const (
	StepPending StepState = iota
	StepCurrent
	StepDone
)

// StepItem is one row of a step checklist.
type StepItem struct {
	Title  string
	State  StepState
	Detail string // badge, e.g. "2 to fix"; empty for none
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
)

// RenderStepChecklist renders the wizard steps as a tree with box-drawing
// connectors. Done steps get a green ✔, the current step an amber ▶, and
// detail badges are right-aligned.
func RenderStepChecklist(items []StepItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// Pass 1: build each line's content and track max visible width.
	for idx, item := range items {
		prefix := treeBranch
		if idx == len(items)-1 {
			prefix = treeCorner
		}
		prefix = StyleDim.Render(prefix)

		title := StyleDim.Render(fmt.Sprintf("%d ", idx+1)) + item.Title
		switch item.State {
		case StepDone:
			title = StyleGreen.Render("✔ ") + Dim(item.Title)
		case StepCurrent:
			title = StyleHeader.Render("▶ " + item.Title)
		}

		content := prefix + title
		lines[idx].content = content

		if item.Detail != "" {
			lines[idx].badge = StyleYellow.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	// Pass 2: render with right-aligned badges.
	var b strings.Builder
	for i, li := range lines {
		if li.badge != "" {
			pad := max(0, maxContentWidth-lipgloss.Width(li.content))
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge)
		} else {
			b.WriteString(li.content)
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
