package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"notifier/internal/pkg/errs"
)

// Money represents a monetary amount in minor units (hundredths), giving
// exact addition with no floating point involved. Money is an immutable
// value object; the zero value is a valid zero amount.
//
// Amounts are parsed from decimal strings with at most two fractional
// digits and rendered back with exactly two, so a total built from
// "120.50" and "79.50" is exactly "200.00".
//
// Example:
//
//	a, _ := kernel.ParseMoney("120.50")
//	b, _ := kernel.ParseMoney("79.50")
//	total := a.Add(b)
//	fmt.Println(total) // Output: 200.00
type Money struct {
	minorUnits int64
}

// NewMoneyFromMinorUnits creates a Money from an amount in minor units.
func NewMoneyFromMinorUnits(minorUnits int64) Money {
	return Money{minorUnits: minorUnits}
}

// ParseMoney parses a decimal string such as "120.50", "120.5" or "120"
// into a Money. Thousands separators (commas) and surrounding whitespace
// are tolerated. More than two fractional digits, or a non-numeric value,
// is an error.
func ParseMoney(s string) (Money, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if raw == "" {
		return Money{}, errs.NewValueIsRequiredError("money amount")
	}

	negative := false
	if strings.HasPrefix(raw, "-") {
		negative = true
		raw = raw[1:]
	}

	whole, frac, _ := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}

	var cents int64
	switch len(frac) {
	case 0:
		cents = 0
	case 1:
		cents, err = strconv.ParseInt(frac, 10, 64)
		cents *= 10
	case 2:
		cents, err = strconv.ParseInt(frac, 10, 64)
	default:
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount",
			fmt.Errorf("%q has more than two fractional digits", s))
	}
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money amount", err)
	}

	total := units*100 + cents
	if negative {
		total = -total
	}

	return Money{minorUnits: total}, nil
}

// Add returns the exact sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{minorUnits: m.minorUnits + other.minorUnits}
}

// MinorUnits returns the amount in minor units.
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.minorUnits == other.minorUnits
}

// String renders the amount with exactly two decimal places, e.g. "200.00".
func (m Money) String() string {
	units := m.minorUnits
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return fmt.Sprintf("%s%d.%02d", sign, units/100, units%100)
}
