package tradejournal

import (
	"testing"

	"github.com/etnz/tradejournal/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	on := date.New(2025, 5, 1)
	// realized P&L: +50, -20, +30, 0
	trades := []Trade{
		sold("a", "A", 1, 100, 150, on, Manual),
		sold("b", "B", 2, 100, 90, on, StopLoss),
		sold("c", "C", 3, 100, 110, on, Manual),
		sold("d", "D", 4, 100, 100, on, SectorWeak),
	}
	s := Summarize(trades, "USD")

	assert.Equal(t, 4, s.TotalClosed)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 2, s.Losses, "breakeven is a loss")
	require.NotNil(t, s.WinRate)
	assert.True(t, s.WinRate.Equal(Pct(50)))
	assert.True(t, s.TotalRealized.Equal(USD(60)))
	require.NotNil(t, s.AverageWin)
	assert.True(t, s.AverageWin.Equal(USD(40)))
	require.NotNil(t, s.AverageLoss)
	assert.True(t, s.AverageLoss.Equal(USD(-10)), "avg loss = %v", s.AverageLoss.Exact())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, "USD")
	assert.Equal(t, 0, s.TotalClosed)
	assert.Nil(t, s.WinRate)
	assert.Nil(t, s.AverageWin)
	assert.Nil(t, s.AverageLoss)
	assert.True(t, s.TotalRealized.IsZero())
}

func TestSummarize_BreakevenIsNeverAWin(t *testing.T) {
	on := date.New(2025, 5, 1)
	for _, qty := range []float64{0.5, 1, 7, 1000} {
		s := Summarize([]Trade{sold("a", "A", qty, 42, 42, on, Manual)}, "USD")
		assert.Equal(t, 0, s.Wins)
		assert.Equal(t, 1, s.Losses)
		assert.Nil(t, s.AverageWin)
		assert.True(t, s.AverageLoss.IsZero())
		assert.True(t, s.WinRate.Decimal().IsZero())
	}
}

func TestSummarize_WinRateIsExact(t *testing.T) {
	on := date.New(2025, 5, 1)
	s := Summarize([]Trade{
		sold("a", "A", 1, 1, 2, on, Manual),
		sold("b", "B", 1, 2, 1, on, Manual),
		sold("c", "C", 1, 2, 1, on, Manual),
	}, "USD")
	want := decimal.NewFromInt(1).Div(decimal.NewFromInt(3)).Mul(decimal.NewFromInt(100))
	assert.True(t, s.WinRate.Decimal().Equal(want), "win rate = %v", s.WinRate.Decimal())
	assert.Equal(t, "33.33%", s.WinRate.String())
}

func TestSummarize_ExcludesTradesWithoutRealizedGain(t *testing.T) {
	on := date.New(2025, 5, 1)
	broken := sold("x", "X", 1, 10, 20, on, Manual)
	broken.SellPrice = nil
	s := Summarize([]Trade{
		sold("a", "A", 1, 10, 5, on, StopLoss),
		broken,
		buy("open", "O", 1, 10, on),
	}, "USD")
	assert.Equal(t, 1, s.TotalClosed)
	assert.Equal(t, 0, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.True(t, s.TotalRealized.Equal(USD(-5)))
	assert.True(t, s.WinRate.Decimal().IsZero())
}
