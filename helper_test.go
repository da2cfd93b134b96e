package tradejournal

import (
	"testing"

	"github.com/etnz/tradejournal/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// usdp is USD as a pointer.
func usdp(v float64) *Money {
	m := USD(v)
	return &m
}

// day parses a date or fails the test.
func day(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// buy returns an open trade.
func buy(id, ticker string, qty, price float64, on date.Date) Trade {
	return Trade{ID: id, Ticker: ticker, Quantity: Q(qty), BuyPrice: USD(price), BuyDate: on}
}

// sold returns a closed trade.
func sold(id, ticker string, qty, buyPrice, sellPrice float64, on date.Date, reason ExitReason) Trade {
	t := buy(id, ticker, qty, buyPrice, on.Add(-30))
	t.Closed = true
	t.SellPrice = usdp(sellPrice)
	t.SellDate = on
	t.ExitReason = reason
	return t
}

// dec parses a decimal constant.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ids returns the ids of trades, in order.
func ids(trades []Trade) []string {
	res := make([]string, 0, len(trades))
	for _, t := range trades {
		res = append(res, t.ID)
	}
	return res
}
