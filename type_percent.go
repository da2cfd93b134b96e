package tradejournal

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a ratio expressed in percent, kept exact until displayed.
type Percent struct {
	value decimal.Decimal
}

// Pct builds a Percent from a value already expressed in percent (12.5 is 12.5%).
func Pct[T number](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Decimal() decimal.Decimal { return p.value }

// Equal compares with a precision of 1e-4 percent.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	return p.value.Sub(q.value).Abs().LessThan(decimal.NewFromFloat(precision))
}

func (p Percent) String() string {
	return Display(p.value).StringFixed(displayPlaces(p.value)) + "%"
}

func (p Percent) SignedString() string {
	if Display(p.value).IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}
