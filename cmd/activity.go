package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/tradejournal/activity"
	"github.com/etnz/tradejournal/renderer"
	"github.com/google/subcommands"
)

type activityCmd struct {
	limit int
}

func (*activityCmd) Name() string     { return "activity" }
func (*activityCmd) Synopsis() string { return "display the latest journal activity" }
func (*activityCmd) Usage() string {
	return `tj activity [-n <count>]

  Displays the latest recorded activities, most recent first.
`
}

func (c *activityCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of activities to display, 0 for all")
}

func (c *activityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if config.Activity == "" {
		fmt.Fprintln(os.Stderr, "Error: the activity log is disabled.")
		return subcommands.ExitFailure
	}
	entries, err := activity.Recent(config.Activity, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading activity log: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderActivity(entries))
	return subcommands.ExitSuccess
}
