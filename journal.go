package tradejournal

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/tradejournal/date"
	"github.com/google/uuid"
)

// Journal is the list of trades of a user, in insertion order.
//
// It implements Repository, and the few mutations the journal needs: buying,
// closing and attaching charts.
type Journal struct {
	currency string
	trades   []Trade
}

// NewJournal creates an empty journal whose prices are in currency.
func NewJournal(currency string) *Journal {
	return &Journal{currency: currency}
}

// Currency returns the currency of all the journal prices.
func (j *Journal) Currency() string { return j.currency }

// Trades returns a copy of all trades.
func (j *Journal) Trades() []Trade { return slices.Clone(j.trades) }

// Len returns the number of trades.
func (j *Journal) Len() int { return len(j.trades) }

func (j *Journal) OpenTrades(context.Context) ([]Trade, error) {
	return j.selectTrades(false), nil
}

func (j *Journal) ClosedTrades(context.Context) ([]Trade, error) {
	return j.selectTrades(true), nil
}

func (j *Journal) selectTrades(closed bool) []Trade {
	res := make([]Trade, 0, len(j.trades))
	for _, t := range j.trades {
		if t.Closed == closed {
			res = append(res, t)
		}
	}
	return res
}

// Get returns the trade with that id.
func (j *Journal) Get(id string) (Trade, error) {
	i := j.index(id)
	if i < 0 {
		return Trade{}, fmt.Errorf("%w: %q", ErrTradeNotFound, id)
	}
	return j.trades[i], nil
}

func (j *Journal) index(id string) int {
	return slices.IndexFunc(j.trades, func(t Trade) bool { return t.ID == id })
}

// Buy records a new open trade and returns it with its new ID.
func (j *Journal) Buy(t Trade) (Trade, error) {
	t.Ticker = strings.TrimSpace(t.Ticker)
	if t.Ticker == "" {
		return Trade{}, fmt.Errorf("a trade must have a ticker")
	}
	if !t.Quantity.IsPositive() {
		return Trade{}, fmt.Errorf("invalid quantity %v for %s: must be positive", t.Quantity, t.Ticker)
	}
	if t.BuyPrice.IsNegative() {
		return Trade{}, fmt.Errorf("invalid buy price %v for %s: must not be negative", t.BuyPrice.Exact(), t.Ticker)
	}
	if t.BuyDate.IsZero() {
		t.BuyDate = date.Today()
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	} else if j.index(t.ID) >= 0 {
		return Trade{}, fmt.Errorf("duplicate trade id %q", t.ID)
	}
	t.BuyPrice = M(t.BuyPrice.Decimal(), j.currency)
	t.Closed = false
	t.SellPrice = nil
	t.SellDate = date.Date{}
	t.ExitReason = ""
	j.trades = append(j.trades, t)
	return t, nil
}

// Close sells the trade with that id. A zero sold date means today.
func (j *Journal) Close(id string, price Money, sold date.Date, reason ExitReason, notes string) (Trade, error) {
	i := j.index(id)
	if i < 0 {
		return Trade{}, fmt.Errorf("%w: %q", ErrTradeNotFound, id)
	}
	t := j.trades[i]
	if t.Closed {
		return Trade{}, fmt.Errorf("%w: %s %q", ErrAlreadyClosed, t.Ticker, id)
	}
	if price.IsNegative() {
		return Trade{}, fmt.Errorf("invalid sell price %v for %s: must not be negative", price.Exact(), t.Ticker)
	}
	if _, err := ParseExitReason(string(reason)); err != nil {
		return Trade{}, err
	}
	if sold.IsZero() {
		sold = date.Today()
	}
	p := M(price.Decimal(), j.currency)
	t.Closed = true
	t.SellPrice = &p
	t.SellDate = sold
	t.ExitReason = reason
	t.SellNotes = notes
	j.trades[i] = t
	return t, nil
}

// AttachChart adds a chart to the trade with that id.
func (j *Journal) AttachChart(id string, c Chart) (Trade, error) {
	i := j.index(id)
	if i < 0 {
		return Trade{}, fmt.Errorf("%w: %q", ErrTradeNotFound, id)
	}
	if strings.TrimSpace(c.File) == "" {
		return Trade{}, fmt.Errorf("a chart must have a file name")
	}
	t := j.trades[i]
	t.Charts = append(slices.Clone(t.Charts), c)
	j.trades[i] = t
	return t, nil
}
