package tradejournal

// ValuedPosition is a Position valued at its quote.
type ValuedPosition struct {
	Position
	Price       *Money // nil when unknown.
	MarketValue Money  // zero when the price is unknown.
	Unrealized  *Money // nil when the price is unknown.
	PnLPercent  *Percent
}

// PortfolioSummary holds the totals of a valuation.
type PortfolioSummary struct {
	TotalValue       Money
	TotalCost        Money
	TotalUnrealized  Money // positions with unknown price count for zero.
	TotalGainPercent *Percent
	Unpriced         int // number of positions with unknown price.
}

// Valuation is the live valuation of all open positions.
type Valuation struct {
	Positions []ValuedPosition
	Summary   PortfolioSummary
}

// Value values each position with its quote and computes the portfolio totals.
//
// Values are exact: nothing is rounded here, so that totals are the sum of
// the exact per position values.
func Value(positions []Position, quotes map[string]Quote, currency string) Valuation {
	v := Valuation{
		Positions: make([]ValuedPosition, 0, len(positions)),
		Summary: PortfolioSummary{
			TotalValue:      M(0, currency),
			TotalCost:       M(0, currency),
			TotalUnrealized: M(0, currency),
		},
	}

	for _, p := range positions {
		vp := valuePosition(p, quotes[p.Ticker])
		s := &v.Summary
		s.TotalValue = s.TotalValue.Add(vp.MarketValue)
		s.TotalCost = s.TotalCost.Add(vp.CostBasis)
		if vp.Unrealized != nil {
			s.TotalUnrealized = s.TotalUnrealized.Add(*vp.Unrealized)
		} else {
			s.Unpriced++
		}
		v.Positions = append(v.Positions, vp)
	}
	v.Summary.TotalGainPercent = v.Summary.TotalUnrealized.Percent(v.Summary.TotalCost)
	return v
}

func valuePosition(p Position, q Quote) ValuedPosition {
	vp := ValuedPosition{
		Position:    p,
		MarketValue: M(0, p.CostBasis.Currency()),
	}
	if !q.Known() {
		return vp
	}
	price := *q.Price
	vp.Price = &price
	vp.MarketValue = price.Mul(p.Quantity)
	// (price - average) * quantity, without the rounding residue of the average.
	unrealized := vp.MarketValue.Sub(p.CostBasis)
	vp.Unrealized = &unrealized
	vp.PnLPercent = unrealized.Percent(p.CostBasis)
	return vp
}
