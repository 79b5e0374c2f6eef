package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/buildledger/estimate-api/internal/money"
)

// ItemTotal computes quantity times unit cost in minor units, rounded to
// the nearest cent. Quantity is in source units; the unit cost must already
// be minor units. Converting user-typed major-unit text is the caller's
// job (see ApplyUnitCostEdit).
func ItemTotal(qty decimal.Decimal, unitCost money.Money) money.Money {
	return qty.Mul(decimal.NewFromInt(unitCost)).Round(0).IntPart()
}

// SectionTotal sums the stored totals of the given items. It trusts
// Item.Total rather than recomputing from quantity and cost, so every edit
// path has to refresh Total in the same operation or this sum drifts.
func SectionTotal(items []Item) money.Money {
	var total money.Money
	for _, it := range items {
		total += it.Total
	}
	return total
}

// GrandTotal sums section totals across the document. Sections without
// items contribute zero.
func GrandTotal(sections []Section) money.Money {
	var total money.Money
	for _, s := range sections {
		total += SectionTotal(s.Items)
	}
	return total
}
