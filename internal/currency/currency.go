// Package currency holds the number and amount helpers used at the
// presentation boundary: digit normalization for user input, grouped
// formatting and amount-in-words for receipts.
package currency

import (
	"errors"
	"strings"

	"github.com/divan/num2words"
	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for input that does not parse to a
// non-negative amount.
var ErrInvalidAmount = errors.New("invalid amount")

// NormalizeDigits maps Arabic-Indic and Persian digits onto their
// ASCII equivalents and leaves everything else untouched. Forms filled
// from localized keyboards routinely mix digit sets.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩': // Arabic-Indic
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic
			return '0' + (r - '۰')
		}
		return r
	}, s)
}

// Parse converts user input to an exact decimal amount. It accepts
// localized digits, grouping commas and spaces, and the Arabic decimal
// separator. Negative amounts are rejected.
func Parse(s string) (decimal.Decimal, error) {
	s = NormalizeDigits(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "٬", "") // Arabic thousands separator
	s = strings.ReplaceAll(s, "٫", ".") // Arabic decimal separator
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Format renders an amount with comma-grouped thousands, e.g.
// "1,800,000" or "12,500.50". The fractional part is kept only when
// non-zero.
func Format(d decimal.Decimal) string {
	neg := d.IsNegative()
	abs := d.Abs()

	whole := abs.Truncate(0)
	frac := abs.Sub(whole)

	digits := whole.StringFixed(0)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if !frac.IsZero() {
		fracStr := frac.StringFixed(2)
		out += fracStr[1:] // drop the leading "0"
	}
	if neg {
		out = "-" + out
	}
	return out
}

// InWords spells out the whole part of an amount for printed receipts.
// Fractions are ignored; fees here are whole-unit amounts in practice.
func InWords(d decimal.Decimal) string {
	whole := d.Truncate(0)
	if !whole.IsInteger() || whole.Abs().Cmp(decimal.NewFromInt(1_000_000_000_000)) >= 0 {
		return ""
	}
	return num2words.Convert(int(whole.IntPart()))
}
