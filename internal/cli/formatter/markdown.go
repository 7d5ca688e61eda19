package formatter

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu        sync.Mutex
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// RenderMarkdown renders md for the terminal at width columns. It returns
// md unchanged if glamour cannot render it.
func RenderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(20, min(width, 100))

	mdMu.Lock()
	r := mdRenderers[width]
	if r == nil {
		// A fixed style avoids terminal background queries.
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdMu.Unlock()
			return md
		}
		mdRenderers[width] = rr
		r = rr
	}
	mdMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
