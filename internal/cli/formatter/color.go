package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Alpine palette: glacier blues, prayer-flag accents, slate for chrome.
var (
	ColorGreen  = lipgloss.Color("#7fb77e")
	ColorYellow = lipgloss.Color("#f2c14e")
	ColorRed    = lipgloss.Color("#e4572e")
	ColorBlue   = lipgloss.Color("#76b6c4")
	ColorPurple = lipgloss.Color("#b48ead")
	ColorDim    = lipgloss.Color("#8a8f98")
	ColorFg     = lipgloss.Color("#e5e9f0")
	ColorHeader = lipgloss.Color("#f28c28")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// NoticeKind selects the color of a one-line notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// Notice renders msg with a leading glyph colored by kind.
func Notice(kind NoticeKind, msg string) string {
	switch kind {
	case NoticeSuccess:
		return StyleGreen.Render("✔ " + msg)
	case NoticeWarning:
		return StyleYellow.Render("▲ " + msg)
	case NoticeError:
		return StyleRed.Render("✖ " + msg)
	default:
		return StyleBlue.Render("● " + msg)
	}
}

// Header renders an uppercase section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
