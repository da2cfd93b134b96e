package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/etnz/tradejournal/activity"
	"github.com/etnz/tradejournal/renderer"
	"github.com/google/subcommands"
)

type rulesCmd struct {
	title string
	edit  string
}

func (*rulesCmd) Name() string     { return "rules" }
func (*rulesCmd) Synopsis() string { return "display or change the trading rules" }
func (*rulesCmd) Usage() string {
	return `tj rules [-title <title>] [-edit <file>]

  Displays the trading rules you committed to.

  -edit replaces the rules with the markdown content of the file, "-" reads it
  from the standard input. -title renames them.
`
}

func (c *rulesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "New title of the rules")
	f.StringVar(&c.edit, "edit", "", "Markdown file with the new rules, \"-\" for the standard input")
}

func (c *rulesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "Error: rules takes no argument.")
		return subcommands.ExitUsageError
	}
	store := Rules()
	rules, err := store.Rules(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.title != "" || c.edit != "" {
		content := rules.Content
		if c.edit != "" {
			if content, err = readInput(c.edit); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		rules = rules.Edit(c.title, content, time.Now())
		if err := store.SaveRules(ctx, rules); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		Activity().Log("Updated rules", &activity.Target{Type: "Rules", ID: config.Rules}, "title="+rules.Title)
	}

	printMarkdown(renderer.RenderRules(rules))
	return subcommands.ExitSuccess
}

// readInput reads a whole file, "-" is the standard input.
func readInput(name string) (string, error) {
	if name == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(name)
	return string(b), err
}
