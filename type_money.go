package tradejournal

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from any number in the given currency.
func M[T number](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses an exact decimal string like "103.25" in the given currency.
func ParseMoney(s, currency string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the display representation of the money value.
//
// Amounts below one in magnitude keep 4 decimals, others are shown with 2.
func (m Money) String() string {
	cur := m.currency()
	fraction := displayPlaces(m.value)
	if cur.Template == "" {
		// unknown currency, no formatting rules.
		return Display(m.value).StringFixed(fraction)
	}
	f := money.NewFormatter(int(fraction), cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(Display(m.value).Shift(fraction).IntPart())
}

// Exact returns the full precision decimal representation with no currency symbol.
func (m Money) Exact() string { return m.value.String() }

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Mul(n Quantity) Money     { return Money{value: m.value.Mul(n.value), cur: m.cur} }

// Div divides by a quantity. Dividing by zero returns zero.
func (m Money) Div(n Quantity) Money {
	if n.IsZero() {
		return Money{value: decimal.Zero, cur: m.cur}
	}
	return Money{value: m.value.Div(n.value), cur: m.cur}
}

// Percent returns m as a percentage of base, or nil if base is zero.
func (m Money) Percent(base Money) *Percent {
	if base.IsZero() {
		return nil
	}
	p := Percent{value: m.value.Div(base.value).Mul(hundred)}
	return &p
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
