// Package estimate implements the canonical estimate document, its
// normalization from upstream payloads, and the totals cascade applied on
// inline cell edits.
package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/buildledger/estimate-api/internal/money"
)

// Field identifies which editable value of an item a cell edit targets.
type Field string

const (
	FieldQuantity Field = "quantity"
	FieldUnitCost Field = "unitCost"
)

// CellRef addresses a single editable cell. At most one cell is in editing
// state across the whole document; activating a new cell replaces the
// previous reference.
type CellRef struct {
	SectionIndex int
	ItemIndex    int
	Field        Field
}

// Item is a single estimate line. Total is derived and refreshed in the
// same operation as any quantity or unit-cost change; nothing else may
// write it. QuantityText and UnitCostText hold the raw text currently in
// the editor so partial input (a trailing decimal point) survives
// keystrokes; nil means the cell was never typed into and the numeric
// value is rendered instead. They are not part of the canonical value.
type Item struct {
	ID           string
	Type         string
	TaskName     string
	Description  string
	Quantity     decimal.Decimal
	UnitCost     money.Money
	Unit         string
	Total        money.Money
	TaxApplied   bool
	CostCode     string
	QuantityText *string
	UnitCostText *string
}

// Section groups ordered items under a named heading. Order is display
// order, preserved exactly as received.
type Section struct {
	ID          string
	Name        string
	Description string
	Items       []Item
}

// Document is the canonical in-memory estimate. Every edit produces a new
// Document value; published snapshots are never mutated in place.
type Document struct {
	EstimateNumber string
	Sections       []Section
}
