package tradejournal

import (
	"sort"
	"strings"

	"github.com/etnz/tradejournal/date"
	"github.com/rs/zerolog"
)

// Filter selects closed trades. A zero field imposes no constraint.
type Filter struct {
	Ticker     string     // case-insensitive substring of the ticker.
	ExitReason ExitReason // exact code.
	Sold       date.Range // inclusive sell date bounds.
}

// ParseFilter builds a Filter from raw request parameters.
//
// Dates that cannot be parsed are logged and ignored, as if they were not set.
// The exit reason is kept as is: an unknown code simply matches nothing.
func ParseFilter(log zerolog.Logger, ticker, exitReason, from, to string) Filter {
	f := Filter{
		Ticker:     strings.TrimSpace(ticker),
		ExitReason: ExitReason(strings.TrimSpace(exitReason)),
	}
	f.Sold.From = parseBound(log, "start_date", from)
	f.Sold.To = parseBound(log, "end_date", to)
	return f
}

func parseBound(log zerolog.Logger, name, value string) date.Date {
	value = strings.TrimSpace(value)
	if value == "" {
		return date.Date{}
	}
	d, err := date.Parse(value)
	if err != nil {
		log.Warn().Err(err).Str("filter", name).Msg("ignoring malformed date filter")
		return date.Date{}
	}
	return d
}

// Match reports whether t is a closed trade meeting every criterion of f.
func (f Filter) Match(t Trade) bool {
	if !t.Closed {
		return false
	}
	if f.Ticker != "" && !strings.Contains(strings.ToUpper(t.Ticker), strings.ToUpper(f.Ticker)) {
		return false
	}
	if f.ExitReason != "" && t.ExitReason != f.ExitReason {
		return false
	}
	if !f.Sold.IsOpen() && (t.SellDate.IsZero() || !f.Sold.Contains(t.SellDate)) {
		return false
	}
	return true
}

// Apply returns the closed trades matching f, most recently sold first.
// Trades sold on the same day keep their input order.
func (f Filter) Apply(trades []Trade) []Trade {
	res := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			res = append(res, t)
		}
	}
	SortBySellDate(res)
	return res
}

// SortBySellDate sorts trades by descending sell date, stable for ties.
// Trades without a sell date come last.
func SortBySellDate(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		a, b := trades[i].SellDate, trades[j].SellDate
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
}

// SortByBuyDate sorts trades by descending buy date, stable for ties.
func SortByBuyDate(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool { return trades[i].BuyDate.After(trades[j].BuyDate) })
}
