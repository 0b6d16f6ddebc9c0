// Package money represents currency amounts as integer cents.
//
// All arithmetic in the splitting and settlement code happens on whole
// cents so that totals reconcile exactly; floats and decimal strings only
// appear at the API and database boundaries.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is a monetary amount in the smallest currency unit.
type Cents int64

// SettlementTolerance is the threshold at or below which a balance is
// considered already settled. One cent absorbs rounding noise from
// aggregation without hiding real debts.
const SettlementTolerance Cents = 1

// FromFloat converts an amount in currency units (e.g. 12.34) to cents,
// rounding half away from zero at the cent.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// RoundCents rounds a fractional cent quantity to whole cents,
// half away from zero.
func RoundCents(cents float64) Cents {
	return Cents(math.Round(cents))
}

// Parse converts a decimal string (as returned by NUMERIC database columns)
// to cents. Empty input parses as zero; this guards NULL-backed columns.
// At most two fractional digits are accepted.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var units int64
	if whole != "" {
		var err error
		units, err = strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}

	var cents int64
	if hasFrac {
		if len(frac) > 2 {
			return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
		}
		// "5" means 50 cents, "05" means 5 cents
		padded := frac + strings.Repeat("0", 2-len(frac))
		var err error
		cents, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
	}

	total := units*100 + cents
	if negative {
		total = -total
	}
	return Cents(total), nil
}

// Percent returns the given percentage of c, rounded half away from zero
// at the cent.
func (c Cents) Percent(pct float64) Cents {
	return RoundCents(float64(c) * pct / 100)
}

// Abs returns the magnitude of c.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Float converts c back to currency units. Only for display-adjacent code;
// comparisons and arithmetic should stay in cents.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats c as a fixed two-decimal string, e.g. "12.34" or "-0.05".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
