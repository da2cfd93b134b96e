package tradejournal

import "github.com/shopspring/decimal"

// displayPlaces returns how many decimals a value is shown with.
func displayPlaces(v decimal.Decimal) int32 {
	if v.Abs().LessThan(decimal.NewFromInt(1)) {
		return 4
	}
	return 2
}

// Display rounds v for presentation: 4 decimals when |v| < 1, 2 decimals otherwise.
//
// Display values are never summed: totals are computed from exact values and
// rounded on their own.
func Display(v decimal.Decimal) decimal.Decimal {
	return v.Round(displayPlaces(v))
}

// DisplayFloat is Display converted to a float64, as used by JSON payloads.
// A nil input gives a nil output.
func DisplayFloat(v *decimal.Decimal) *float64 {
	if v == nil {
		return nil
	}
	f := Display(*v).InexactFloat64()
	return &f
}
