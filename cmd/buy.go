package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/tradejournal"
	"github.com/etnz/tradejournal/activity"
	"github.com/etnz/tradejournal/date"
	"github.com/google/subcommands"
)

type buyCmd struct {
	ticker     string
	quantity   string
	price      string
	date       string
	indicators string
	notes      string
	charts     stringsFlag
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a new trade" }
func (*buyCmd) Usage() string {
	return `tj buy -t <ticker> -q <quantity> -p <price> [-d <date>] [-i <indicators>] [-n <notes>] [-chart <file>...]

  Records a new open trade in the journal and prints its ID.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "Ticker of the security (required)")
	f.StringVar(&c.quantity, "q", "", "Number of shares bought (required)")
	f.StringVar(&c.price, "p", "", "Price paid per share (required)")
	f.StringVar(&c.date, "d", "", "Buy date, defaults to today")
	f.StringVar(&c.indicators, "i", "", "Indicators observed at the time of the buy")
	f.StringVar(&c.notes, "n", "", "Free notes about the buy")
	f.Var(&c.charts, "chart", "Chart file supporting the buy, can be repeated")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.quantity == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -t, -q and -p flags are required.")
		return subcommands.ExitUsageError
	}
	qty, err := tradejournal.ParseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := tradejournal.ParseMoney(c.price, config.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
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
	t, err := j.Buy(tradejournal.Trade{
		Ticker:     strings.ToUpper(c.ticker),
		Quantity:   qty,
		BuyPrice:   price,
		BuyDate:    on,
		Indicators: c.indicators,
		BuyNotes:   c.notes,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, file := range c.charts {
		if t, err = j.AttachChart(t.ID, newChart(file, "")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := EncodeJournal(j); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	act := Activity()
	target := &activity.Target{Type: "Trade", ID: t.ID}
	act.Log("Added trade "+t.Ticker, target, fmt.Sprintf("qty=%s buy=%s", t.Quantity, t.BuyPrice.Exact()))
	for _, ch := range t.Charts {
		act.Log("Uploaded chart for "+t.Ticker, target, ch.File)
	}

	fmt.Println(t.ID)
	return subcommands.ExitSuccess
}

// newChart builds a chart, warning when the file cannot be found.
func newChart(file, caption string) tradejournal.Chart {
	if _, err := os.Stat(file); err != nil {
		log.Warn().Err(err).Str("chart", file).Msg("chart file not found, recording it anyway")
	}
	return tradejournal.Chart{File: file, Caption: caption}
}

// findTrade returns the trade whose ID is, or uniquely starts with, prefix.
func findTrade(j *tradejournal.Journal, prefix string) (tradejournal.Trade, error) {
	if t, err := j.Get(prefix); err == nil {
		return t, nil
	}
	var found []tradejournal.Trade
	for _, t := range j.Trades() {
		if prefix != "" && strings.HasPrefix(t.ID, prefix) {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return tradejournal.Trade{}, fmt.Errorf("%w: %q", tradejournal.ErrTradeNotFound, prefix)
	case 1:
		return found[0], nil
	}
	return tradejournal.Trade{}, fmt.Errorf("ambiguous trade id %q matches %d trades", prefix, len(found))
}
