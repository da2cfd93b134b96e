package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradejournal/activity"
	"github.com/google/subcommands"
)

type chartCmd struct {
	caption string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "attach chart files to a trade" }
func (*chartCmd) Usage() string {
	return `tj chart [-c <caption>] <id> <file>...

  Attaches one or more chart files to the trade with that ID.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.caption, "c", "", "Caption of the charts")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: a trade ID and at least one file are required.")
		return subcommands.ExitUsageError
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
	files := f.Args()[1:]
	for _, file := range files {
		if t, err = j.AttachChart(t.ID, newChart(file, c.caption)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := EncodeJournal(j); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	act := Activity()
	for _, file := range files {
		act.Log("Uploaded chart for "+t.Ticker, &activity.Target{Type: "Trade", ID: t.ID}, file)
	}
	return subcommands.ExitSuccess
}
