package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/tradejournal/renderer"
	"github.com/google/subcommands"
)

type tradesCmd struct {
	filterFlags
	page int
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list open trades and a page of closed trades" }
func (*tradesCmd) Usage() string {
	return `tj trades [-q <ticker>] [-r <reason>] [-from <date>] [-to <date>] [-page <n>]

  Lists all open trades, most recent first, then one page of ten closed
  trades, most recently sold first, matching the filters.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	c.filterFlags.SetFlags(f)
	f.IntVar(&c.page, "page", 1, "Page of closed trades to display")
}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	e := NewEngine(j, nil)
	filter := c.Filter()
	open, err := e.Open(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	page, err := e.ClosedPage(ctx, filter, strconv.Itoa(c.page))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderTradeList(renderer.NewTradeList(open, filter, page)))
	return subcommands.ExitSuccess
}
