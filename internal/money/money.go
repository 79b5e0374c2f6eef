// Package money provides integer minor-unit currency arithmetic and the
// display/parse helpers used by the estimate table.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value stored in minor units (cents).
type Money = int64

var oneHundred = decimal.NewFromInt(100)

// Format renders minor units as US-locale currency with exactly two fraction
// digits. A nil amount renders as "$0.00".
func Format(m *Money) string {
	var v int64
	if m != nil {
		v = *m
	}
	negative := v < 0
	if negative {
		v = -v
	}
	whole := v / 100
	cents := v % 100
	result := fmt.Sprintf("$%s.%02d", groupThousands(fmt.Sprintf("%d", whole)), cents)
	if negative {
		result = "-" + result
	}
	return result
}

// MajorText renders minor units as a plain decimal number with no currency
// symbol, suitable for seeding an editable text field. A nil amount renders
// as "0". Trailing fraction zeros are dropped (725 -> "7.25", 150000 -> "1500").
func MajorText(m *Money) string {
	if m == nil {
		return "0"
	}
	return decimal.New(*m, -2).String()
}

// ParseDecimal parses user-typed numeric text leniently. Empty, malformed or
// negative input becomes zero; the function never fails, so editing is never
// interrupted by a parse error.
func ParseDecimal(text string) decimal.Decimal {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FromMajor converts a major-unit amount (dollars) into minor units,
// rounding to the nearest cent.
func FromMajor(d decimal.Decimal) Money {
	return d.Mul(oneHundred).Round(0).IntPart()
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}
