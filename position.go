package tradejournal

import (
	"sort"

	"github.com/etnz/tradejournal/date"
)

// Position is the synthesis of all open trades of a single ticker into one
// weighted average holding.
type Position struct {
	Ticker          string
	Quantity        Quantity
	AverageBuyPrice Money
	CostBasis       Money
	OldestBuyDate   date.Date
	AnchorID        string // ID of one of the trades, to link back to it.
	Trades          int    // number of trades folded in.
}

// Aggregate groups open trades by upper-cased ticker and folds each group into
// one Position. Closed trades are ignored.
//
// Positions are sorted by ticker.
func Aggregate(trades []Trade) []Position {
	index := make(map[string]int)
	positions := make([]Position, 0)

	for _, t := range trades {
		if t.Closed {
			continue
		}
		ticker := t.Symbol()
		i, ok := index[ticker]
		if !ok {
			i = len(positions)
			index[ticker] = i
			positions = append(positions, Position{
				Ticker:        ticker,
				CostBasis:     M(0, t.BuyPrice.Currency()),
				OldestBuyDate: t.BuyDate,
				AnchorID:      t.ID,
			})
		}
		p := &positions[i]
		p.Quantity = p.Quantity.Add(t.Quantity)
		p.CostBasis = p.CostBasis.Add(t.Cost())
		p.Trades++
		if t.BuyDate.Before(p.OldestBuyDate) {
			p.OldestBuyDate = t.BuyDate
		}
	}

	for i := range positions {
		p := &positions[i]
		// Div returns zero for a zero quantity.
		p.AverageBuyPrice = p.CostBasis.Div(p.Quantity)
	}

	sort.SliceStable(positions, func(i, j int) bool { return positions[i].Ticker < positions[j].Ticker })
	return positions
}

// Tickers returns the tickers of the positions.
func Tickers(positions []Position) []string {
	tickers := make([]string, 0, len(positions))
	for _, p := range positions {
		tickers = append(tickers, p.Ticker)
	}
	return tickers
}
