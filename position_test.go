package tradejournal

import (
	"math/rand"
	"testing"

	"github.com/etnz/tradejournal/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	d1, d2 := day(t, "2025-01-10"), day(t, "2025-02-03")
	trades := []Trade{
		buy("a", "XYZ", 10, 100, d2),
		buy("b", "xyz", 5, 110, d1),
		buy("c", "ABC", 3, 20, d2),
		sold("d", "XYZ", 100, 1, 2, d2, Manual), // closed trades are not positions
	}

	positions := Aggregate(trades)
	require.Len(t, positions, 2)

	abc, xyz := positions[0], positions[1]
	assert.Equal(t, "ABC", abc.Ticker)
	assert.Equal(t, "XYZ", xyz.Ticker)

	assert.True(t, xyz.Quantity.Equal(Q(15)), "quantity = %v", xyz.Quantity)
	assert.True(t, xyz.CostBasis.Equal(USD(1550)), "cost basis = %v", xyz.CostBasis.Exact())
	assert.True(t, xyz.AverageBuyPrice.Decimal().Sub(dec("103.3333333")).Abs().LessThan(dec("0.0000001")),
		"average = %v", xyz.AverageBuyPrice.Exact())
	assert.Equal(t, d1, xyz.OldestBuyDate)
	assert.Contains(t, []string{"a", "b"}, xyz.AnchorID)
	assert.Equal(t, 2, xyz.Trades)

	assert.True(t, abc.AverageBuyPrice.Equal(USD(20)))
	assert.Equal(t, "c", abc.AnchorID)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]Trade{sold("a", "X", 1, 1, 1, date.New(2025, 1, 1), Manual)}))
}

func TestAggregate_ZeroQuantity(t *testing.T) {
	// should not happen in a valid journal, but must not divide by zero.
	positions := Aggregate([]Trade{buy("a", "X", 0, 12, date.New(2025, 1, 1))})
	require.Len(t, positions, 1)
	assert.True(t, positions[0].AverageBuyPrice.IsZero())
	assert.True(t, positions[0].CostBasis.IsZero())
}

func TestAggregate_DoesNotMutateTrades(t *testing.T) {
	trades := []Trade{buy("a", "xyz", 1, 1, date.New(2025, 1, 1))}
	Aggregate(trades)
	assert.Equal(t, "xyz", trades[0].Ticker)
}

// TestAggregate_PreservesCost checks that the sum of the cost basis is the
// sum of quantity*price over the trades, for random journals.
func TestAggregate_PreservesCost(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	tickers := []string{"AAA", "bbb", "Ccc", "DDD"}
	for i := 0; i < 50; i++ {
		var trades []Trade
		want := USD(0)
		for n := rnd.Intn(20); n > 0; n-- {
			tr := buy("", tickers[rnd.Intn(len(tickers))], float64(rnd.Intn(1000)+1)/10, float64(rnd.Intn(100000))/100, date.New(2025, 1, 1+rnd.Intn(200)))
			trades = append(trades, tr)
			want = want.Add(tr.Cost())
		}
		got := USD(0)
		for _, p := range Aggregate(trades) {
			got = got.Add(p.CostBasis)
		}
		assert.True(t, got.Equal(want), "run %d: total cost = %v want %v", i, got.Exact(), want.Exact())
	}
}
