package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr(v Money) *Money { return &v }

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input *Money
		want  string
	}{
		{"nil", nil, "$0.00"},
		{"zero", ptr(0), "$0.00"},
		{"cents only", ptr(99), "$0.99"},
		{"ten dollars", ptr(1000), "$10.00"},
		{"thousands grouping", ptr(150000), "$1,500.00"},
		{"millions grouping", ptr(123456789), "$1,234,567.89"},
		{"negative", ptr(-12550), "-$125.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestMajorText(t *testing.T) {
	assert.Equal(t, "0", MajorText(nil))
	assert.Equal(t, "0", MajorText(ptr(0)))
	assert.Equal(t, "7.25", MajorText(ptr(725)))
	assert.Equal(t, "1500", MajorText(ptr(150000)))
	assert.Equal(t, "0.05", MajorText(ptr(5)))
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "0"},
		{"0", "0"},
		{"2", "2"},
		{"7.25", "7.25"},
		{" 3.5 ", "3.5"},
		{"abc", "0"},
		{"1.2.3", "0"},
		{"-4", "0"},
	}
	for _, tt := range tests {
		got := ParseDecimal(tt.input)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParseDecimal(%q) = %s", tt.input, got)
	}
}

func TestFromMajor(t *testing.T) {
	assert.Equal(t, Money(725), FromMajor(decimal.RequireFromString("7.25")))
	assert.Equal(t, Money(100), FromMajor(decimal.NewFromInt(1)))
	assert.Equal(t, Money(0), FromMajor(decimal.Zero))
	// Sub-cent input rounds to the nearest cent.
	assert.Equal(t, Money(13), FromMajor(decimal.RequireFromString("0.125")))
}
