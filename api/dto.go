package api

import (
	"time"

	"github.com/etnz/tradejournal"
)

// JSON payloads. Amounts are display rounded floats, nil when unknown.

type positionJSON struct {
	ID            string   `json:"id"`
	Ticker        string   `json:"ticker"`
	Quantity      float64  `json:"quantity"`
	BuyPrice      *float64 `json:"buy_price"`
	Cost          *float64 `json:"cost"`
	LastPrice     *float64 `json:"last_price"`
	MarketValue   *float64 `json:"market_value"`
	UnrealizedPnL *float64 `json:"unrealized_pnl"`
	PnLPct        *float64 `json:"pnl_pct"`
	BuyDate       string   `json:"buy_date"`
}

type valueJSON struct {
	Positions       []positionJSON `json:"positions"`
	TotalValue      *float64       `json:"total_value"`
	TotalCost       *float64       `json:"total_cost"`
	TotalUnrealized *float64       `json:"total_unrealized"`
	TotalGain       *float64       `json:"total_gain"`
	TotalGainPct    *float64       `json:"total_gain_pct"`
	Unpriced        int            `json:"unpriced"`
}

type tradeJSON struct {
	ID         string   `json:"id"`
	Ticker     string   `json:"ticker"`
	Quantity   float64  `json:"quantity"`
	BuyPrice   *float64 `json:"buy_price"`
	BuyDate    string   `json:"buy_date"`
	Closed     bool     `json:"closed"`
	SellPrice  *float64 `json:"sell_price"`
	SellDate   *string  `json:"sell_date"`
	PnL        *float64 `json:"pnl"`
	ExitReason string   `json:"exit_reason,omitempty"`
	Indicators string   `json:"indicators,omitempty"`
	BuyNotes   string   `json:"buy_notes,omitempty"`
	SellNotes  string   `json:"sell_notes,omitempty"`
	Charts     []string `json:"charts"`
}

type filterJSON struct {
	Q          string `json:"q"`
	ExitReason string `json:"exit_reason"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type pageJSON struct {
	Page        int         `json:"page"`
	NumPages    int         `json:"num_pages"`
	Count       int         `json:"count"`
	HasPrevious bool        `json:"has_previous"`
	HasNext     bool        `json:"has_next"`
	Filters     filterJSON  `json:"filters"`
	Trades      []tradeJSON `json:"trades"`
}

type reportJSON struct {
	TotalClosed   int         `json:"total_closed"`
	Wins          int         `json:"wins"`
	Losses        int         `json:"losses"`
	WinRate       *float64    `json:"win_rate"`
	TotalRealized *float64    `json:"total_realized"`
	AvgWin        *float64    `json:"avg_win"`
	AvgLoss       *float64    `json:"avg_loss"`
	Filters       filterJSON  `json:"filters"`
	ClosedTrades  []tradeJSON `json:"closed_trades"`
}

type rulesJSON struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	UpdatedAt *string `json:"updated_at"`
}

type rulesInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newRulesJSON(r tradejournal.Rules) rulesJSON {
	rj := rulesJSON{Title: r.Title, Content: r.Content}
	if !r.UpdatedAt.IsZero() {
		at := r.UpdatedAt.UTC().Format(time.RFC3339)
		rj.UpdatedAt = &at
	}
	return rj
}

func amount(m *tradejournal.Money) *float64 {
	if m == nil {
		return nil
	}
	d := m.Decimal()
	return tradejournal.DisplayFloat(&d)
}

func percent(p *tradejournal.Percent) *float64 {
	if p == nil {
		return nil
	}
	d := p.Decimal()
	return tradejournal.DisplayFloat(&d)
}

func newValueJSON(v *tradejournal.Valuation) valueJSON {
	res := valueJSON{
		Positions:       make([]positionJSON, 0, len(v.Positions)),
		TotalValue:      amount(&v.Summary.TotalValue),
		TotalCost:       amount(&v.Summary.TotalCost),
		TotalUnrealized: amount(&v.Summary.TotalUnrealized),
		TotalGain:       amount(&v.Summary.TotalUnrealized),
		TotalGainPct:    percent(v.Summary.TotalGainPercent),
		Unpriced:        v.Summary.Unpriced,
	}
	for _, p := range v.Positions {
		res.Positions = append(res.Positions, positionJSON{
			ID:            p.AnchorID,
			Ticker:        p.Ticker,
			Quantity:      p.Quantity.Decimal().InexactFloat64(),
			BuyPrice:      amount(&p.AverageBuyPrice),
			Cost:          amount(&p.CostBasis),
			LastPrice:     amount(p.Price),
			MarketValue:   amount(&p.MarketValue),
			UnrealizedPnL: amount(p.Unrealized),
			PnLPct:        percent(p.PnLPercent),
			BuyDate:       p.OldestBuyDate.String(),
		})
	}
	return res
}

func newTradeJSON(t tradejournal.Trade) tradeJSON {
	res := tradeJSON{
		ID:         t.ID,
		Ticker:     t.Ticker,
		Quantity:   t.Quantity.Decimal().InexactFloat64(),
		BuyPrice:   amount(&t.BuyPrice),
		BuyDate:    t.BuyDate.String(),
		Closed:     t.Closed,
		SellPrice:  amount(t.SellPrice),
		ExitReason: string(t.ExitReason),
		Indicators: t.Indicators,
		BuyNotes:   t.BuyNotes,
		SellNotes:  t.SellNotes,
		Charts:     t.ChartFiles(),
	}
	if !t.SellDate.IsZero() {
		s := t.SellDate.String()
		res.SellDate = &s
	}
	if pnl, ok := t.RealizedPnL(); ok {
		res.PnL = amount(&pnl)
	}
	return res
}

func newTradesJSON(trades []tradejournal.Trade) []tradeJSON {
	res := make([]tradeJSON, 0, len(trades))
	for _, t := range trades {
		res = append(res, newTradeJSON(t))
	}
	return res
}
