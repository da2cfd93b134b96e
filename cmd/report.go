package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradejournal/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	filterFlags
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display win/loss statistics of closed trades" }
func (*reportCmd) Usage() string {
	return `tj report [-q <ticker>] [-r <reason>] [-from <date>] [-to <date>]

  Displays the success metrics of the closed trades matching the filters:
  wins, losses, win rate, total realized gain and average win and loss.
  A trade sold at its buy price counts as a loss.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) { c.filterFlags.SetFlags(f) }

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	r, err := NewEngine(j, nil).Report(ctx, c.Filter())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderReport(renderer.NewReport(r)))
	return subcommands.ExitSuccess
}
