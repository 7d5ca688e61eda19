package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// RelativeTimeFrom describes when t happened relative to now, e.g. "5m ago".
func RelativeTimeFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDate(t, now)
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	days := int(math.Round(diff.Hours() / 24))
	if days < 14 {
		return fmt.Sprintf("%dd ago", days)
	}
	return HumanDate(t, now)
}

// HumanDate formats t as "Today", "Yesterday" or "Jan 2, 2006".
func HumanDate(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// Money formats whole dollars with thousands separators: 2750 -> "$2,750".
func Money(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.Itoa(amount)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String()
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// YesNo renders a boolean as a colored yes/no.
func YesNo(b bool) string {
	if b {
		return StyleGreen.Render("yes")
	}
	return StyleDim.Render("no")
}

// Humanize turns an enum value such as "non_vegetarian" into "Non vegetarian".
func Humanize(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
