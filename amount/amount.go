// Package amount implements a fixed-precision decimal type for monetary values.
//
// Amount wraps shopspring/decimal rather than a binary float so that addition and
// subtraction never lose precision, and so overflow/underflow are reported to the
// caller instead of silently wrapping or saturating. Division and multiplication are
// deliberately not exposed: the transaction-processing engine never needs them.
package amount

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Amount is an opaque fixed-precision decimal value.
type Amount struct {
	dec decimal.Decimal
}

// outputScale is the number of fractional digits Amount is rounded to on output.
const outputScale = 4

var (
	// Zero is the additive identity.
	Zero = Amount{dec: decimal.Zero}

	// MinAmount is the most negative representable Amount.
	//
	// The bound mirrors the 96-bit mantissa of rust_decimal, the reference
	// implementation's decimal type: not all amounts a big.Int could hold are
	// considered representable, only those within this range.
	MinAmount = Amount{dec: decimal.RequireFromString("-79228162514264337593543950335")}

	// MaxAmount is the most positive representable Amount.
	MaxAmount = Amount{dec: decimal.RequireFromString("79228162514264337593543950335")}
)

// FromFloat64 converts f to an Amount. ok is false iff f cannot be represented:
// NaN, +Inf, -Inf, or a magnitude outside [MinAmount, MaxAmount] (notably
// including math.MaxFloat64 and -math.MaxFloat64).
func FromFloat64(f float64) (a Amount, ok bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, false
	}
	d := decimal.NewFromFloat(f)
	a = Amount{dec: d}
	if a.Cmp(MinAmount) < 0 || a.Cmp(MaxAmount) > 0 {
		return Amount{}, false
	}
	return a, true
}

// CheckedAdd returns a+rhs. ok is false iff the result would fall outside
// [MinAmount, MaxAmount].
func (a Amount) CheckedAdd(rhs Amount) (Amount, bool) {
	sum := Amount{dec: a.dec.Add(rhs.dec)}
	if sum.Cmp(MinAmount) < 0 || sum.Cmp(MaxAmount) > 0 {
		return Amount{}, false
	}
	return sum, true
}

// CheckedSub returns a-rhs. ok is false iff the result would fall outside
// [MinAmount, MaxAmount].
func (a Amount) CheckedSub(rhs Amount) (Amount, bool) {
	diff := Amount{dec: a.dec.Sub(rhs.dec)}
	if diff.Cmp(MinAmount) < 0 || diff.Cmp(MaxAmount) > 0 {
		return Amount{}, false
	}
	return diff, true
}

// Cmp returns -1, 0 or 1 depending on whether a is less than, equal to, or
// greater than rhs.
func (a Amount) Cmp(rhs Amount) int {
	return a.dec.Cmp(rhs.dec)
}

// Equal reports whether a and rhs represent the same value.
func (a Amount) Equal(rhs Amount) bool {
	return a.dec.Equal(rhs.dec)
}

// IsNegative reports whether a is strictly less than Zero.
func (a Amount) IsNegative() bool {
	return a.dec.IsNegative()
}

// Round4 rounds a to 4 fractional digits, half away from zero, the precision
// used when an Amount is serialized for output.
func (a Amount) Round4() Amount {
	return Amount{dec: a.dec.Round(outputScale)}
}

// String renders a with its full internal precision.
func (a Amount) String() string {
	return a.dec.String()
}

// MarshalJSON renders a rounded to 4 fractional digits, matching the reference
// implementation's serialization rule. It is not suitable for round-tripping
// full precision, only for human-facing output.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.Round4().dec.String())), nil
}
