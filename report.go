package tradejournal

import "github.com/shopspring/decimal"

// ReportSummary holds the success metrics of a set of closed trades.
type ReportSummary struct {
	TotalClosed   int
	Wins          int // sold strictly above the buy price.
	Losses        int // sold at or below the buy price.
	WinRate       *Percent
	TotalRealized Money
	AverageWin    *Money
	AverageLoss   *Money // can be zero when losses are breakeven trades.
}

// Summarize computes the report statistics of trades.
//
// Trades that are not closed, or closed without a sell price, have no realized
// gain and are left out of every count and sum.
func Summarize(trades []Trade, currency string) ReportSummary {
	s := ReportSummary{TotalRealized: M(0, currency)}
	winSum, lossSum := M(0, currency), M(0, currency)

	for _, t := range trades {
		pnl, ok := t.RealizedPnL()
		if !ok {
			continue
		}
		s.TotalClosed++
		s.TotalRealized = s.TotalRealized.Add(pnl)
		if t.IsWin() {
			s.Wins++
			winSum = winSum.Add(pnl)
		} else {
			s.Losses++
			lossSum = lossSum.Add(pnl)
		}
	}

	if s.TotalClosed > 0 {
		rate := Percent{value: decimal.NewFromInt(int64(s.Wins)).Div(decimal.NewFromInt(int64(s.TotalClosed))).Mul(hundred)}
		s.WinRate = &rate
	}
	s.AverageWin = average(winSum, s.Wins)
	s.AverageLoss = average(lossSum, s.Losses)
	return s
}

func average(sum Money, n int) *Money {
	if n == 0 {
		return nil
	}
	avg := sum.Div(Q(n))
	return &avg
}
