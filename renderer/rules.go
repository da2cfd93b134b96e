package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradejournal"
)

// RenderRules renders the trading rules under their title.
func RenderRules(r tradejournal.Rules) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	if !r.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "_Updated on %s_\n\n", r.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	content := strings.TrimSpace(r.Content)
	if content == "" {
		fmt.Fprintln(&b, "No rules written yet.")
		return b.String()
	}
	fmt.Fprintln(&b, content)
	return b.String()
}
