package tradejournal

import (
	"fmt"
	"strings"

	"github.com/etnz/tradejournal/date"
)

// ExitReason is the code recorded when a trade is closed.
type ExitReason string

const (
	StopLoss           ExitReason = "SL"
	ResistanceAbove    ExitReason = "RES"
	EmaSlopeDecreasing ExitReason = "EMA"
	SectorWeak         ExitReason = "SECT"
	Manual             ExitReason = "MAN"
)

// ExitReasons lists every valid exit reason in display order.
var ExitReasons = []ExitReason{StopLoss, ResistanceAbove, EmaSlopeDecreasing, SectorWeak, Manual}

// Label returns the human readable name of the reason.
func (r ExitReason) Label() string {
	switch r {
	case StopLoss:
		return "Stop Loss hit"
	case ResistanceAbove:
		return "Resistance above"
	case EmaSlopeDecreasing:
		return "EMA slope decreasing"
	case SectorWeak:
		return "Sector weak"
	case Manual:
		return "Manual"
	}
	return string(r)
}

// ParseExitReason accepts only the exact reason codes.
func ParseExitReason(s string) (ExitReason, error) {
	for _, r := range ExitReasons {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid exit reason %q, want one of %v", s, ExitReasons)
}

// Chart is an image attached to a trade as evidence.
type Chart struct {
	File    string `json:"file"`
	Caption string `json:"caption,omitempty"`
}

// Trade is a single buy, and its optional sell, as recorded in the journal.
//
// Trades reaching the reporting functions are expected to be valid: a non
// empty ticker, a positive quantity and well formed dates. A closed trade
// carries a sell price, a sell date and an exit reason.
type Trade struct {
	ID         string
	Ticker     string
	Quantity   Quantity
	BuyPrice   Money
	BuyDate    date.Date
	Indicators string
	BuyNotes   string

	Closed     bool
	SellPrice  *Money
	SellDate   date.Date
	ExitReason ExitReason
	SellNotes  string

	Charts []Chart
}

// Symbol returns the ticker normalized for grouping and price lookups.
func (t Trade) Symbol() string { return strings.ToUpper(strings.TrimSpace(t.Ticker)) }

// Cost returns quantity times buy price.
func (t Trade) Cost() Money { return t.BuyPrice.Mul(t.Quantity) }

// RealizedPnL returns (sell - buy) * quantity.
// ok is false when the trade is still open or has no sell price.
func (t Trade) RealizedPnL() (pnl Money, ok bool) {
	if !t.Closed || t.SellPrice == nil {
		return Money{}, false
	}
	return t.SellPrice.Sub(t.BuyPrice).Mul(t.Quantity), true
}

// IsWin reports whether the trade was sold strictly above its buy price.
// A trade sold at its buy price is a loss.
func (t Trade) IsWin() bool {
	return t.Closed && t.SellPrice != nil && t.SellPrice.GreaterThan(t.BuyPrice)
}

// UnrealizedPnL returns the gain of the trade if it was sold at last.
func (t Trade) UnrealizedPnL(last Money) Money {
	return last.Sub(t.BuyPrice).Mul(t.Quantity)
}

// ChartFiles returns the file names of the attached charts.
func (t Trade) ChartFiles() []string {
	files := make([]string, 0, len(t.Charts))
	for _, c := range t.Charts {
		files = append(files, c.File)
	}
	return files
}
