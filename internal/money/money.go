// Package money implements fixed-precision currency arithmetic on integer
// minor units (cents). All division and percentage operations round
// explicitly and distribute remainders so that the pieces of any split
// always sum back to the amount being split.
package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in minor currency units (e.g. cents).
// Constructors reject negative input, but arithmetic may produce negative
// values: a group member's balance is negative when they owe money.
type Money int64

var (
	// ErrInvalidAmount is returned when an amount is negative or not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidRate is returned when a percentage rate is negative or not finite.
	ErrInvalidRate = errors.New("invalid rate")
)

// FromCents builds a Money from a minor-unit count.
// Fails with ErrInvalidAmount on negative input.
func FromCents(cents int64) (Money, error) {
	if cents < 0 {
		return 0, fmt.Errorf("%w: %d cents", ErrInvalidAmount, cents)
	}
	return Money(cents), nil
}

// FromFloat converts a major-unit amount (e.g. 12.34 dollars) to Money,
// rounding half-up to the nearest minor unit.
// Fails with ErrInvalidAmount on negative, NaN or infinite input.
func FromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return Money(math.Floor(amount*100 + 0.5)), nil
}

// Parse converts a decimal string such as "12.34" to Money at two-decimal
// precision. Fails with ErrInvalidAmount on negative or malformed input,
// or when there are more than two fractional digits.
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	whole, frac, _ := strings.Cut(s, ".")
	if strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	cents := int64(0)
	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
		}
		// Pad "5" to "50" so ".5" means fifty cents.
		for len(frac) < 2 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	return Money(units*100 + cents), nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other. The result may be negative.
func (m Money) Sub(other Money) Money {
	return m - other
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// Cents returns the raw minor-unit count.
func (m Money) Cents() int64 {
	return int64(m)
}

// String renders the amount in major units with two decimals, e.g. "12.34"
// or "-0.50".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Rate is a percentage expressed in basis points: 15% == 1500, 8.25% == 825.
// Keeping rates integral means every percentage operation stays in exact
// integer arithmetic until the final half-up rounding.
type Rate int64

// RateFromPercent converts a percentage (15 means 15%) to a Rate.
// Fails with ErrInvalidRate on negative, NaN or infinite input.
func RateFromPercent(percent float64) (Rate, error) {
	if math.IsNaN(percent) || math.IsInf(percent, 0) || percent < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRate, percent)
	}
	return Rate(math.Floor(percent*100 + 0.5)), nil
}

// Percent returns the rate as a percentage value (Rate(825).Percent() == 8.25).
func (r Rate) Percent() float64 {
	return float64(r) / 100
}

// IsZero reports whether the rate is zero.
func (r Rate) IsZero() bool {
	return r == 0
}

// MulRate applies a percentage to the amount, rounding half-up to the
// nearest minor unit.
func (m Money) MulRate(r Rate) Money {
	// m * r / 10000 with half-up rounding, all in integers.
	product := int64(m) * int64(r)
	if product < 0 {
		return Money(-((-product + 5000) / 10000))
	}
	return Money((product + 5000) / 10000)
}

// DivideEvenly splits the amount into n shares that sum exactly to m.
// Any remainder of minor units is given one cent at a time to the first
// shares, in order. Fails when n < 1.
func (m Money) DivideEvenly(n int) ([]Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot divide among %d shares", n)
	}
	if m < 0 {
		return nil, fmt.Errorf("%w: cannot divide %s", ErrInvalidAmount, m)
	}
	base := int64(m) / int64(n)
	remainder := int64(m) % int64(n)
	shares := make([]Money, n)
	for i := range shares {
		shares[i] = Money(base)
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares, nil
}

// DistributeByWeights splits total proportionally to the given weights so
// that the shares sum exactly to total. A zero weight yields a zero share.
// Rounding is cumulative: share i is the difference between the rounded
// running totals at i and i-1, which cannot drift.
// Fails when the weights sum to zero or any weight is negative.
func DistributeByWeights(total Money, weights []Money) ([]Money, error) {
	var sum int64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative weight %s", ErrInvalidAmount, w)
		}
		sum += int64(w)
	}
	if sum == 0 {
		return nil, fmt.Errorf("cannot distribute %s: total weight is zero", total)
	}

	shares := make([]Money, len(weights))
	var cumWeight, prev int64
	for i, w := range weights {
		cumWeight += int64(w)
		// Round half-up at each cumulative point.
		cur := (int64(total)*cumWeight*2 + sum) / (sum * 2)
		shares[i] = Money(cur - prev)
		prev = cur
	}
	return shares, nil
}

// Sum adds up a list of amounts.
func Sum(amounts []Money) Money {
	var total Money
	for _, a := range amounts {
		total += a
	}
	return total
}
