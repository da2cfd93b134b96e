// Package cmd implements the CLI application to manage a trade journal.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/activity"
	tjlog "github.com/etnz/tradejournal/logger"
	"github.com/etnz/tradejournal/yahoo"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands lists every subcommand by group.
var Commands = map[string][]subcommands.Command{
	"journal": {&buyCmd{}, &closeCmd{}, &chartCmd{}, &showCmd{}},
	"reports": {&positionsCmd{}, &tradesCmd{}, &reportCmd{}, &exportCmd{}, &activityCmd{}},
	"server":  {&serveCmd{}},
	"help":    {&topicCmd{}, &rulesCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for group, cmds := range Commands {
		for _, cmd := range cmds {
			c.Register(cmd, group)
		}
	}
}

// IsCommand reports whether name is a registered subcommand.
func IsCommand(name string) bool {
	for _, cmds := range Commands {
		for _, cmd := range cmds {
			if cmd.Name() == name {
				return true
			}
		}
	}
	return false
}

var (
	config = DefaultConfig()
	log    = zerolog.Nop()
)

// Setup loads the configuration once the command line is parsed.
func Setup(flags *flag.FlagSet) error {
	c, err := LoadConfig(flags)
	if err != nil {
		return err
	}
	config = c
	log = tjlog.New(tjlog.Config{Level: c.LogLevel, Pretty: true})
	return nil
}

// DecodeJournal reads the journal file. A missing file is an empty journal.
func DecodeJournal() (*tradejournal.Journal, error) {
	f, err := os.Open(config.Journal)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().Str("journal", config.Journal).Msg("journal does not exist, starting an empty one")
		return tradejournal.NewJournal(config.Currency), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open journal %q: %w", config.Journal, err)
	}
	defer f.Close()
	j, err := tradejournal.DecodeJournal(f, config.Currency)
	if err != nil {
		return nil, fmt.Errorf("cannot read journal %q: %w", config.Journal, err)
	}
	return j, nil
}

// EncodeJournal writes the journal file, replacing it only once fully written.
func EncodeJournal(j *tradejournal.Journal) error {
	return tradejournal.WriteFileAtomic(config.Journal, func(w io.Writer) error {
		return tradejournal.EncodeJournal(w, j)
	})
}

// Rules returns the store of the trading rules.
func Rules() tradejournal.RulesStore { return tradejournal.RulesFile(config.Rules) }

// Activity returns the activity logger of the journal.
func Activity() activity.Logger {
	if config.Activity == "" {
		return activity.Nop{}
	}
	return activity.NewFile(config.Activity, log)
}

// PriceSource returns the live price source, or nil when prices are disabled.
// Static prices, as "TICKER=PRICE" pairs, replace the live source.
func PriceSource(static []string) (tradejournal.PriceSource, error) {
	if len(static) > 0 {
		prices, err := tradejournal.ParsePrices(static...)
		if err != nil {
			return nil, err
		}
		return tradejournal.NewResolver(prices, config.Currency, log), nil
	}
	if !config.Prices {
		return nil, nil
	}
	client := yahoo.New(config.YahooURL, config.Timeout)
	return tradejournal.NewResolver(client, config.Currency, log).WithConcurrency(config.Concurrency), nil
}

// NewEngine returns an engine on top of the journal.
func NewEngine(j *tradejournal.Journal, prices tradejournal.PriceSource) *tradejournal.Engine {
	return tradejournal.NewEngine(j, prices, config.Currency, log)
}

// printMarkdown renders markdown for the terminal, or prints it as is with -raw.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(140))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// stringsFlag collects a repeated string flag.
type stringsFlag []string

func (s *stringsFlag) String() string     { return strings.Join(*s, ",") }
func (s *stringsFlag) Set(v string) error { *s = append(*s, v); return nil }
