package quantity

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Tenths is a non-negative quantity expressed as a count of tenths of a unit.
type Tenths int64

// Zero is the empty quantity.
const Zero Tenths = 0

// MaxTenths bounds accepted quantities so sums across a catalog stay within
// int64. Larger input is treated like non-numeric input.
const MaxTenths Tenths = math.MaxInt64 / 10

var maxDecimal = decimal.NewFromInt(int64(MaxTenths))

// Round1 rounds x to one decimal place, half away from zero.
// Non-finite input returns 0.
func Round1(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(1).InexactFloat64()
}

// FromFloat converts x to Tenths through Round1. Negative, non-finite and
// out of range values become zero.
func FromFloat(x float64) Tenths {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Zero
	}
	t, _ := fromDecimal(decimal.NewFromFloat(x))
	return t
}

// Valid reports whether x is a finite, non-negative quantity within MaxTenths.
func Valid(x float64) bool {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return false
	}
	_, ok := fromDecimal(decimal.NewFromFloat(x))
	return ok
}

// Parse converts free text into Tenths. Empty, non-numeric and out of range
// input is treated as zero. A comma is accepted as the decimal separator.
func Parse(s string) Tenths {
	t, _ := TryParse(s)
	return t
}

// TryParse is Parse that also reports whether s held a usable number.
func TryParse(s string) (Tenths, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, false
	}
	return fromDecimal(d)
}

// fromDecimal reports false when d is beyond MaxTenths.
func fromDecimal(d decimal.Decimal) (Tenths, bool) {
	d = d.Round(1)
	if d.IsNegative() {
		return Zero, true
	}
	d = d.Shift(1)
	if d.GreaterThan(maxDecimal) {
		return Zero, false
	}
	return Tenths(d.IntPart()), true
}

// Float64 returns the quantity in units.
func (t Tenths) Float64() float64 {
	return float64(t) / 10
}

// String formats the quantity with exactly one decimal digit.
func (t Tenths) String() string {
	return decimal.New(int64(t), -1).StringFixed(1)
}

// MarshalJSON encodes the quantity as a JSON number in units.
func (t Tenths) MarshalJSON() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (t *Tenths) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*t = Zero
		return nil
	}
	if _, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err != nil {
		return err
	}
	*t = Parse(s)
	return nil
}

// Sum adds quantities. Integer addition keeps the total exact.
func Sum(values ...Tenths) Tenths {
	var total Tenths
	for _, v := range values {
		total += v
	}
	return total
}

// CeilUnits returns the smallest whole unit count covering t.
// Zero or negative input yields 0.
func CeilUnits(t Tenths) int64 {
	if t <= 0 {
		return 0
	}
	return (int64(t) + 9) / 10
}
