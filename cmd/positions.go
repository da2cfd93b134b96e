package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/date"
	"github.com/etnz/tradejournal/renderer"
	"github.com/google/subcommands"
)

type positionsCmd struct {
	prices stringsFlag
}

func (*positionsCmd) Name() string { return "positions" }
func (*positionsCmd) Synopsis() string {
	return "display the open positions valued at their last price"
}
func (*positionsCmd) Usage() string {
	return `tj positions [-price <TICKER=PRICE>...]

  Groups open trades by ticker and values each position at its last traded
  price. Positions without a known price are listed but count for zero in the
  total value. The five most recently bought open trades follow.

  -price replaces live prices with the given ones. A zero price is a known
  price, it is not replaced by the intraday history.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.prices, "price", "Use this price instead of the live one, as TICKER=PRICE, can be repeated")
}

func (c *positionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prices, err := PriceSource(c.prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	engine := NewEngine(j, prices)
	v, err := engine.Valuation(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	recent, err := engine.RecentOpen(ctx, tradejournal.DefaultRecent)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderPortfolio(&renderer.Portfolio{
		Date:      date.Today(),
		Valuation: *v,
		Recent:    renderer.NewTradeRows(recent),
	}))
	return subcommands.ExitSuccess
}
