package formatter

import (
	"fmt"
	"strings"
)

// RenderStepProgress renders the wizard position, e.g. "●●●○○○ Step 3 of 6".
// step is zero-based.
func RenderStepProgress(step, total int) string {
	if total < 1 {
		return ""
	}
	step = max(0, min(step, total-1))

	var b strings.Builder
	for i := 0; i < total; i++ {
		switch {
		case i < step:
			b.WriteString(StyleGreen.Render("●"))
		case i == step:
			b.WriteString(StyleHeader.Render("●"))
		default:
			b.WriteString(StyleDim.Render("○"))
		}
	}
	return fmt.Sprintf("%s %s", b.String(), Dim(fmt.Sprintf("Step %d of %d", step+1, total)))
}
