package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/tradejournal"
)

// RenderTrade renders the full record of a trade, notes and charts included.
func RenderTrade(t tradejournal.Trade) string {
	var b strings.Builder
	status := "open"
	if t.Closed {
		status = "closed"
	}
	fmt.Fprintf(&b, "# %s (%s)\n\n", t.Symbol(), status)
	fmt.Fprintf(&b, "ID: `%s`\n\n", t.ID)

	fmt.Fprintln(&b, "| | Date | Price | Amount |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|")
	fmt.Fprintf(&b, "| Buy %s | %s | %s | %s |\n", t.Quantity, t.BuyDate, t.BuyPrice, t.Cost())
	if t.SellPrice != nil {
		fmt.Fprintf(&b, "| Sell %s | %s | %s | %s |\n", t.Quantity, t.SellDate, t.SellPrice, t.SellPrice.Mul(t.Quantity))
	}
	if pnl, ok := t.RealizedPnL(); ok {
		fmt.Fprintf(&b, "\nRealized P&L: **%s** (%s)\n", pnl.SignedString(), t.ExitReason.Label())
	}

	section(&b, "Indicators", t.Indicators)
	section(&b, "Buy Notes", t.BuyNotes)
	section(&b, "Sell Notes", t.SellNotes)

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Charts\n\n")
		for _, c := range t.Charts {
			if c.Caption != "" {
				fmt.Fprintf(w, "* %s: %s\n", c.File, c.Caption)
			} else {
				fmt.Fprintf(w, "* %s\n", c.File)
			}
		}
		return len(t.Charts) > 0
	})
	return b.String()
}

// section prints a titled block of free text, only if there is some.
func section(w io.Writer, title, text string) {
	ConditionalBlock(w, func(w io.Writer) bool {
		text = strings.TrimSpace(text)
		fmt.Fprintf(w, "\n## %s\n\n%s\n", title, text)
		return text != ""
	})
}
