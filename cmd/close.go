package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/activity"
	"github.com/etnz/tradejournal/date"
	"github.com/google/subcommands"
)

type closeCmd struct {
	price  string
	date   string
	reason string
	notes  string
	charts stringsFlag
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "sell an open trade" }
func (*closeCmd) Usage() string {
	return `tj close -p <price> -r <reason> [-d <date>] [-n <notes>] [-chart <file>...] <id>

  Closes the open trade with that ID (or a unique prefix of it).

  Exit reasons are: SL (Stop Loss hit), RES (Resistance above),
  EMA (EMA slope decreasing), SECT (Sector weak), MAN (Manual).
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.price, "p", "", "Sell price per share (required)")
	f.StringVar(&c.reason, "r", "", "Exit reason: SL, RES, EMA, SECT or MAN (required)")
	f.StringVar(&c.date, "d", "", "Sell date, defaults to today")
	f.StringVar(&c.notes, "n", "", "Free notes about the sell")
	f.Var(&c.charts, "chart", "Chart file supporting the sell, can be repeated")
}

func (c *closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.price == "" || c.reason == "" {
		fmt.Fprintln(os.Stderr, "Error: a trade ID, -p and -r are required.")
		return subcommands.ExitUsageError
	}
	price, err := tradejournal.ParseMoney(c.price, config.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	reason, err := tradejournal.ParseExitReason(c.reason)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	var on date.Date
	if c.date != "" {
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	t, err := findTrade(j, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if t, err = j.Close(t.ID, price, on, reason, c.notes); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, file := range c.charts {
		if t, err = j.AttachChart(t.ID, newChart(file, "Sell chart")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := EncodeJournal(j); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	Activity().Log("Closed trade "+t.Ticker, &activity.Target{Type: "Trade", ID: t.ID},
		fmt.Sprintf("sell=%s exit=%s", t.SellPrice.Exact(), t.ExitReason))

	pnl, _ := t.RealizedPnL()
	fmt.Printf("Closed %s %s: %s\n", t.Ticker, t.ID, pnl.SignedString())
	return subcommands.ExitSuccess
}
