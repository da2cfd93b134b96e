package cmd

import (
	"flag"

	"github.com/etnz/tradejournal"
)

// filterFlags are the closed trades filter flags shared by several commands.
type filterFlags struct {
	ticker string
	reason string
	from   string
	to     string
}

func (c *filterFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "q", "", "Only trades whose ticker contains this text")
	f.StringVar(&c.reason, "r", "", "Only trades closed for this exit reason (SL, RES, EMA, SECT, MAN)")
	f.StringVar(&c.from, "from", "", "Only trades sold on or after this date")
	f.StringVar(&c.to, "to", "", "Only trades sold on or before this date")
}

// Filter builds the filter. Malformed dates are ignored with a warning.
func (c *filterFlags) Filter() tradejournal.Filter {
	return tradejournal.ParseFilter(log, c.ticker, c.reason, c.from, c.to)
}
