package estimate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		unitCost int64
		want     int64
	}{
		{"whole quantities", "2", 500, 1000},
		{"fractional quantity", "1.5", 300, 450},
		{"rounds to nearest cent", "0.333", 100, 33},
		{"rounds half up", "0.5", 25, 13},
		{"zero quantity", "0", 9999, 0},
		{"zero cost", "12", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty := decimal.RequireFromString(tt.qty)
			assert.Equal(t, tt.want, ItemTotal(qty, tt.unitCost))
		})
	}
}

func TestItemTotalZeroValueOperands(t *testing.T) {
	// A zero-value decimal behaves as 0, so absent quantities never panic.
	var qty decimal.Decimal
	assert.Equal(t, int64(0), ItemTotal(qty, 500))
}

func TestSectionTotalTrustsStoredTotals(t *testing.T) {
	items := []Item{
		{Total: 1000},
		{Total: 250},
		// A stale quantity/cost pair is ignored on purpose: edits must
		// refresh Total themselves.
		{Quantity: decimal.NewFromInt(99), UnitCost: 100, Total: 0},
	}
	assert.Equal(t, int64(1250), SectionTotal(items))
	assert.Equal(t, int64(0), SectionTotal(nil))
	assert.Equal(t, int64(0), SectionTotal([]Item{}))
}

func TestGrandTotalSumsSections(t *testing.T) {
	sections := []Section{
		{Items: []Item{{Total: 1000}, {Total: 500}}},
		{Items: nil},
		{Items: []Item{{Total: 230}}},
	}
	assert.Equal(t, int64(1730), GrandTotal(sections))
	assert.Equal(t, int64(0), GrandTotal(nil))

	// The structural invariant: grand total equals the sum of section
	// totals, which each equal the sum of their items' totals.
	var bySection int64
	for _, s := range sections {
		bySection += SectionTotal(s.Items)
	}
	assert.Equal(t, bySection, GrandTotal(sections))
}
