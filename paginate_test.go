package tradejournal

import (
	"fmt"
	"testing"

	"github.com/etnz/tradejournal/date"
	"github.com/stretchr/testify/assert"
)

func closedTrades(n int) []Trade {
	trades := make([]Trade, 0, n)
	for i := 0; i < n; i++ {
		trades = append(trades, sold(fmt.Sprint(i), "T", 1, 1, 2, date.New(2025, 1, 1).Add(-i), Manual))
	}
	return trades
}

func TestPaginate(t *testing.T) {
	trades := closedTrades(25)
	tests := []struct {
		page      string
		wantPage  int
		wantLen   int
		wantFirst string
	}{
		{page: "1", wantPage: 1, wantLen: 10, wantFirst: "0"},
		{page: "2", wantPage: 2, wantLen: 10, wantFirst: "10"},
		{page: "3", wantPage: 3, wantLen: 5, wantFirst: "20"},
		{page: "4", wantPage: 3, wantLen: 5, wantFirst: "20"},
		{page: "999", wantPage: 3, wantLen: 5, wantFirst: "20"},
		{page: "abc", wantPage: 1, wantLen: 10, wantFirst: "0"},
		{page: "", wantPage: 1, wantLen: 10, wantFirst: "0"},
		{page: "1.5", wantPage: 1, wantLen: 10, wantFirst: "0"},
		{page: " 2 ", wantPage: 2, wantLen: 10, wantFirst: "10"},
		{page: "0", wantPage: 3, wantLen: 5, wantFirst: "20"},
		{page: "-1", wantPage: 3, wantLen: 5, wantFirst: "20"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %q", tt.page), func(t *testing.T) {
			p := Paginate(trades, tt.page, DefaultPageSize)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, 3, p.NumPages)
			assert.Equal(t, 25, p.Total)
			if assert.Len(t, p.Trades, tt.wantLen) {
				assert.Equal(t, tt.wantFirst, p.Trades[0].ID)
			}
		})
	}
}

func TestPaginate_SameItems(t *testing.T) {
	trades := closedTrades(25)
	assert.Equal(t, Paginate(trades, "3", 10).Trades, Paginate(trades, "4", 10).Trades)
	assert.Equal(t, Paginate(trades, "1", 10).Trades, Paginate(trades, "x", 10).Trades)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate(nil, "5", DefaultPageSize)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.NumPages)
	assert.Empty(t, p.Trades)
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())
}

func TestPaginate_Navigation(t *testing.T) {
	p := Paginate(closedTrades(25), "2", DefaultPageSize)
	assert.True(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Len(t, Paginate(closedTrades(25), "1", 0).Trades, DefaultPageSize, "invalid size uses the default")
}
