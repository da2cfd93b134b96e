package cmd

import (
	"flag"
	"os"
	"strings"

	"github.com/etnz/tradejournal"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the tj command line.
//
// Run the binary with COMP_INSTALL=1 to install it in the current shell.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, cmds := range Commands {
		for _, cmd := range cmds {
			f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(f)
			sub := &complete.Command{Flags: flagPredictors(f)}
			switch cmd.Name() {
			case "close", "chart", "show":
				sub.Args = complete.PredictFunc(predictTradeIDs)
			case "topic":
				sub.Args = predict.Set{"readme", "filters", "config", "*"}
			}
			root.Sub[cmd.Name()] = sub
		}
	}
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	reasons := make(predict.Set, 0, len(tradejournal.ExitReasons))
	for _, r := range tradejournal.ExitReasons {
		reasons = append(reasons, string(r))
	}

	flags := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		switch fl.Name {
		case "r":
			flags[fl.Name] = reasons
		case "q", "t":
			flags[fl.Name] = complete.PredictFunc(predictTickers)
		case "journal", "activity":
			flags[fl.Name] = predict.Files("*.jsonl")
		case "config":
			flags[fl.Name] = predict.Files("*.yaml")
		case "rules", "edit":
			flags[fl.Name] = predict.Files("*.md")
		case "o":
			flags[fl.Name] = predict.Files("*.csv")
		case "chart":
			flags[fl.Name] = predict.Files("*")
		case "log-level":
			flags[fl.Name] = predict.Set{"debug", "info", "warn", "error"}
		default:
			flags[fl.Name] = predict.Something
		}
	})
	return flags
}

// completionJournal reads the journal for completion, nil if it cannot.
func completionJournal() *tradejournal.Journal {
	path := os.Getenv(EnvJournal)
	if path == "" {
		path = config.Journal
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	j, err := tradejournal.DecodeJournal(f, config.Currency)
	if err != nil {
		return nil
	}
	return j
}

func predictTradeIDs(prefix string) []string {
	j := completionJournal()
	if j == nil {
		return nil
	}
	var ids []string
	for _, t := range j.Trades() {
		if strings.HasPrefix(t.ID, prefix) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func predictTickers(prefix string) []string {
	j := completionJournal()
	if j == nil {
		return nil
	}
	seen := map[string]bool{}
	var tickers []string
	for _, t := range j.Trades() {
		s := t.Symbol()
		if !seen[s] && strings.HasPrefix(s, strings.ToUpper(prefix)) {
			seen[s] = true
			tickers = append(tickers, s)
		}
	}
	return tickers
}
