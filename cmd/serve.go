package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/etnz/tradejournal/api"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr    string
	origins string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the valuation and reports as a JSON API" }
func (*serveCmd) Usage() string {
	return `tj serve [-addr <address>] [-origins <origin,...>]

  Serves the journal over HTTP:

    GET /health
    GET /api/portfolio/value
    GET /api/trades/open?limit=
    GET /api/trades/closed?q=&exit_reason=&start_date=&end_date=&page=
    GET /api/trades/{id}
    GET /api/reports?q=&exit_reason=&start_date=&end_date=
    GET /api/reports/export.csv?q=&exit_reason=&start_date=&end_date=
    GET /api/rules
    PUT /api/rules {"title": "...", "content": "..."}

  The journal file is read once at startup, the rules file on every request.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, defaults to the configured one")
	f.StringVar(&c.origins, "origins", "", "Comma separated list of allowed CORS origins, defaults to any")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	addr := c.addr
	if addr == "" {
		addr = config.Listen
	}
	var origins []string
	if c.origins != "" {
		origins = strings.Split(c.origins, ",")
	}

	prices, err := PriceSource(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	j, err := DecodeJournal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	srv := api.New(api.Config{
		Addr:           addr,
		Log:            log,
		Engine:         NewEngine(j, prices),
		Rules:          Rules(),
		Activity:       Activity(),
		AllowedOrigins: origins,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			fmt.Fprintf(os.Stderr, "Error shutting down: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
