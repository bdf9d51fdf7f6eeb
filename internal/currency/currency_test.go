package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagold/nti-admin/internal/currency"
)

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "345", currency.NormalizeDigits("٣٤٥"))
	assert.Equal(t, "1900000", currency.NormalizeDigits("۱۹٠٠۰00"))
	assert.Equal(t, "plain 42", currency.NormalizeDigits("plain 42"))
}

func TestParse(t *testing.T) {
	cases := map[string]int64{
		"1800000":   1_800_000,
		"1,800,000": 1_800_000,
		" 900000 ":  900_000,
		"١٢٣":       123,
	}
	for in, want := range cases {
		got, err := currency.Parse(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.NewFromInt(want)), in)
	}

	for _, in := range []string{"", "abc", "-500", "12x4"} {
		_, err := currency.Parse(in)
		assert.ErrorIs(t, err, currency.ErrInvalidAmount, in)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,800,000", currency.Format(decimal.NewFromInt(1_800_000)))
	assert.Equal(t, "900", currency.Format(decimal.NewFromInt(900)))
	assert.Equal(t, "0", currency.Format(decimal.Zero))
	assert.Equal(t, "1,234.50", currency.Format(decimal.NewFromFloat(1234.5)))
}

func TestInWords(t *testing.T) {
	assert.Equal(t, "zero", currency.InWords(decimal.Zero))
	assert.Equal(t, "seventeen", currency.InWords(decimal.NewFromInt(17)))
	assert.NotEmpty(t, currency.InWords(decimal.NewFromInt(1_800_000)))
	// Amounts beyond the converter's range degrade to empty, not panic.
	assert.Empty(t, currency.InWords(decimal.New(1, 15)))
}
