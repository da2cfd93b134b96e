package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/tradejournal/activity"
)

// RenderActivity renders activity entries as a markdown table.
func RenderActivity(entries []activity.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Activity\n\n")
	if len(entries) == 0 {
		fmt.Fprintln(&b, "No activity recorded.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Time | Action | Target | Details |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|")
	for _, e := range entries {
		target := ""
		if e.TargetID != "" {
			target = e.TargetType + " " + e.TargetID
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			e.Time.Local().Format("2006-01-02 15:04"),
			cell(e.Action),
			cell(target),
			cell(e.Details),
		)
	}
	return b.String()
}

// cell makes s safe to print in a table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
