package valueobject

import (
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest accepted amount of a single entry. Monthly and
// trend totals are summed in int64 and stay far from overflow under it.
const MaxAmount int64 = 1_000_000_000_000

var maxAmount = decimal.NewFromInt(MaxAmount)

// AmountFromDecimal converts a monetary value to whole currency units.
// ok is false when the value is not positive, has a fractional part or exceeds MaxAmount.
func AmountFromDecimal(value decimal.Decimal) (amount int64, ok bool) {
	if !value.IsPositive() || !value.IsInteger() || value.GreaterThan(maxAmount) {
		return 0, false
	}
	return value.IntPart(), true
}

// SharePercent returns part as a percentage of total, rounded to one decimal place.
// A zero total yields zero.
func SharePercent(part, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(total), 1)
}
