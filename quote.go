package tradejournal

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Quote is the last known price of a ticker. A nil Price means unknown.
type Quote struct {
	Ticker string
	Price  *Money
}

// Known reports whether the quote has a price.
func (q Quote) Known() bool { return q.Price != nil }

// PriceSource resolves last traded prices for a set of tickers.
//
// Every requested ticker is present in the result, unknown prices included.
type PriceSource interface {
	Resolve(ctx context.Context, tickers []string) map[string]Quote
}

// ResolveQuotes resolves tickers with src. A nil src resolves every ticker to
// an unknown quote.
func ResolveQuotes(ctx context.Context, src PriceSource, tickers []string) map[string]Quote {
	if src == nil {
		return unknownQuotes(tickers)
	}
	quotes := src.Resolve(ctx, tickers)
	if quotes == nil {
		quotes = make(map[string]Quote, len(tickers))
	}
	// make sure that every ticker is there.
	for _, t := range tickers {
		t = strings.ToUpper(t)
		if _, ok := quotes[t]; !ok {
			quotes[t] = Quote{Ticker: t}
		}
	}
	return quotes
}

func unknownQuotes(tickers []string) map[string]Quote {
	quotes := make(map[string]Quote, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(t)
		quotes[t] = Quote{Ticker: t}
	}
	return quotes
}

// Quoter is a market data client able to return prices for one ticker.
type Quoter interface {
	// Fast returns the last traded price.
	Fast(ctx context.Context, ticker string) (float64, error)
	// Intraday returns the close prices of the current day, oldest first.
	Intraday(ctx context.Context, ticker string) ([]float64, error)
}

// DefaultConcurrency is the default number of tickers resolved at once.
const DefaultConcurrency = 4

// Resolver is a PriceSource on top of a Quoter.
//
// For each ticker it tries the fast price first then falls back to the latest
// intraday close. Any failure makes that ticker unknown without affecting the
// others. There is no retry.
type Resolver struct {
	quoter      Quoter
	currency    string
	concurrency int
	log         zerolog.Logger
}

// NewResolver creates a Resolver. A nil quoter resolves everything as unknown.
func NewResolver(quoter Quoter, currency string, log zerolog.Logger) *Resolver {
	return &Resolver{quoter: quoter, currency: currency, concurrency: DefaultConcurrency, log: log}
}

// WithConcurrency sets how many tickers are resolved concurrently (1 is sequential).
func (r *Resolver) WithConcurrency(n int) *Resolver {
	if n < 1 {
		n = 1
	}
	r.concurrency = n
	return r
}

// Resolve implements PriceSource.
func (r *Resolver) Resolve(ctx context.Context, tickers []string) map[string]Quote {
	quotes := unknownQuotes(tickers)
	if r == nil || r.quoter == nil {
		return quotes
	}

	// each worker writes its own slot, no lock needed.
	symbols := make([]string, 0, len(quotes))
	for t := range quotes {
		symbols = append(symbols, t)
	}
	prices := make([]*Money, len(symbols))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, t := range symbols {
		g.Go(func() error {
			price, err := r.resolve(ctx, t)
			if err != nil {
				r.log.Warn().Err(err).Str("ticker", t).Msg("price unknown")
				return nil // never cancel the other tickers.
			}
			prices[i] = &price
			return nil
		})
	}
	_ = g.Wait()

	for i, t := range symbols {
		quotes[t] = Quote{Ticker: t, Price: prices[i]}
	}
	return quotes
}

// resolve returns the price of a single ticker.
func (r *Resolver) resolve(ctx context.Context, ticker string) (price Money, err error) {
	defer func() {
		// a misbehaving client must not take the whole valuation down.
		if v := recover(); v != nil {
			err = fmt.Errorf("price lookup for %q panicked: %v", ticker, v)
		}
	}()

	last, err := r.quoter.Fast(ctx, ticker)
	if err == nil && usable(last) && last != 0 {
		return M(last, r.currency), nil
	}
	// a fast price of zero is only kept when there is no history to replace it.
	zero := err == nil && last == 0
	closes, herr := r.quoter.Intraday(ctx, ticker)
	switch {
	case herr == nil && len(closes) > 0:
		last = closes[len(closes)-1]
	case zero:
		return M(0, r.currency), nil
	case herr != nil:
		return Money{}, fmt.Errorf("cannot get intraday history for %q: %w", ticker, herr)
	default:
		return Money{}, fmt.Errorf("no intraday history for %q", ticker)
	}
	if !usable(last) {
		return Money{}, fmt.Errorf("invalid price %v for %q", last, ticker)
	}
	return M(last, r.currency), nil
}

func usable(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Prices is a static Quoter, prices are looked up by upper-cased ticker.
type Prices map[string]float64

// ParsePrices parses "TICKER=PRICE" pairs.
func ParsePrices(pairs ...string) (Prices, error) {
	p := make(Prices, len(pairs))
	for _, pair := range pairs {
		ticker, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid price %q want TICKER=PRICE", pair)
		}
		m, err := ParseMoney(strings.TrimSpace(value), "")
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", pair, err)
		}
		p[strings.ToUpper(strings.TrimSpace(ticker))] = m.Decimal().InexactFloat64()
	}
	return p, nil
}

func (p Prices) Fast(_ context.Context, ticker string) (float64, error) {
	v, ok := p[strings.ToUpper(ticker)]
	if !ok {
		return math.NaN(), fmt.Errorf("no price for %q", ticker)
	}
	return v, nil
}

func (p Prices) Intraday(_ context.Context, ticker string) ([]float64, error) {
	return nil, fmt.Errorf("no intraday history for %q", ticker)
}
