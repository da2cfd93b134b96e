package tradejournal

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"
)

// Engine computes valuations and reports from the trades of a Repository.
//
// It is stateless: every call reads the trades again and computes everything
// from scratch.
type Engine struct {
	repo     Repository
	prices   PriceSource // can be nil
	currency string
	log      zerolog.Logger
}

// NewEngine creates an Engine. prices can be nil, then all quotes are unknown.
func NewEngine(repo Repository, prices PriceSource, currency string, log zerolog.Logger) *Engine {
	return &Engine{repo: repo, prices: prices, currency: currency, log: log}
}

// Logger returns the logger used for suppressed faults.
func (e *Engine) Logger() zerolog.Logger { return e.log }

// Currency returns the currency of all values.
func (e *Engine) Currency() string { return e.currency }

// Open returns the open trades, most recently bought first.
func (e *Engine) Open(ctx context.Context) ([]Trade, error) {
	open, err := e.repo.OpenTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read open trades: %w", err)
	}
	open = slices.Clone(open)
	SortByBuyDate(open)
	return open, nil
}

// DefaultRecent is the number of open trades listed as recent.
const DefaultRecent = 5

// RecentOpen returns at most n open trades, most recently bought first.
func (e *Engine) RecentOpen(ctx context.Context, n int) ([]Trade, error) {
	open, err := e.Open(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(open) > n {
		open = open[:n]
	}
	return open, nil
}

// Trade returns the trade with the given ID, open or closed.
func (e *Engine) Trade(ctx context.Context, id string) (Trade, error) {
	open, err := e.repo.OpenTrades(ctx)
	if err != nil {
		return Trade{}, fmt.Errorf("cannot read open trades: %w", err)
	}
	closed, err := e.repo.ClosedTrades(ctx)
	if err != nil {
		return Trade{}, fmt.Errorf("cannot read closed trades: %w", err)
	}
	for _, t := range slices.Concat(open, closed) {
		if t.ID == id {
			return t, nil
		}
	}
	return Trade{}, fmt.Errorf("%w: %q", ErrTradeNotFound, id)
}

// Positions returns the aggregated open positions.
func (e *Engine) Positions(ctx context.Context) ([]Position, error) {
	open, err := e.repo.OpenTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read open trades: %w", err)
	}
	return Aggregate(open), nil
}

// Valuation values the open positions at their last price.
func (e *Engine) Valuation(ctx context.Context) (*Valuation, error) {
	positions, err := e.Positions(ctx)
	if err != nil {
		return nil, err
	}
	quotes := ResolveQuotes(ctx, e.prices, Tickers(positions))
	v := Value(positions, quotes, e.currency)
	e.log.Debug().Int("positions", len(v.Positions)).Int("unpriced", v.Summary.Unpriced).Msg("valuation computed")
	return &v, nil
}

// Closed returns the closed trades matching f, most recently sold first.
func (e *Engine) Closed(ctx context.Context, f Filter) ([]Trade, error) {
	closed, err := e.repo.ClosedTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot read closed trades: %w", err)
	}
	return f.Apply(closed), nil
}

// ClosedPage returns one page of the closed trades matching f.
func (e *Engine) ClosedPage(ctx context.Context, f Filter, page string) (Page, error) {
	closed, err := e.Closed(ctx, f)
	if err != nil {
		return Page{}, err
	}
	return Paginate(closed, page, DefaultPageSize), nil
}

// Report is a report of closed trades.
type Report struct {
	Filter  Filter
	Trades  []Trade // all matching trades, most recently sold first.
	Summary ReportSummary
}

// Report computes the statistics of the closed trades matching f.
func (e *Engine) Report(ctx context.Context, f Filter) (*Report, error) {
	closed, err := e.Closed(ctx, f)
	if err != nil {
		return nil, err
	}
	return &Report{Filter: f, Trades: closed, Summary: Summarize(closed, e.currency)}, nil
}

// ExportCSV writes the closed trades matching f as CSV.
func (e *Engine) ExportCSV(ctx context.Context, w io.Writer, f Filter) error {
	closed, err := e.Closed(ctx, f)
	if err != nil {
		return err
	}
	return WriteCSV(w, closed)
}
