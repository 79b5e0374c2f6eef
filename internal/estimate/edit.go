package estimate

import (
	"regexp"

	"github.com/buildledger/estimate-api/internal/money"
)

// inputMask is the client-side mask for editable numeric cells: digits with
// at most one decimal point. It is not a full validator (multiple leading
// zeros pass).
var inputMask = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

// AcceptsInput reports whether raw cell text may enter the transient
// display field. Rejected text leaves the previous state untouched.
func AcceptsInput(text string) bool {
	return text == "" || inputMask.MatchString(text)
}

// ApplyQuantityEdit returns a new document with the targeted item's
// quantity, display text and total replaced. Every structure on the path
// from item to root is a fresh value, so the returned document's identity
// changes even when the parsed quantity is unchanged. Out-of-range indices
// and masked-out text return the original document with applied=false.
func ApplyQuantityEdit(doc *Document, sectionIndex, itemIndex int, text string) (*Document, bool) {
	if !AcceptsInput(text) {
		return doc, false
	}
	return withItem(doc, sectionIndex, itemIndex, func(it *Item) {
		qty := money.ParseDecimal(text)
		it.QuantityText = &text
		it.Quantity = qty
		it.Total = ItemTotal(qty, it.UnitCost)
	})
}

// ApplyUnitCostEdit behaves like ApplyQuantityEdit for the unit-cost cell.
// The typed text is major units (dollars) and is scaled by 100 into minor
// units before storage; the upstream payload supplies unit cost already in
// minor units, and that asymmetry is deliberate.
func ApplyUnitCostEdit(doc *Document, sectionIndex, itemIndex int, text string) (*Document, bool) {
	if !AcceptsInput(text) {
		return doc, false
	}
	return withItem(doc, sectionIndex, itemIndex, func(it *Item) {
		unitCost := money.FromMajor(money.ParseDecimal(text))
		it.UnitCostText = &text
		it.UnitCost = unitCost
		it.Total = ItemTotal(it.Quantity, unitCost)
	})
}

// withItem copies the path from the targeted item up to the document root
// and applies mutate to the fresh item copy. Siblings are shared; nothing
// previously published is written to.
func withItem(doc *Document, sectionIndex, itemIndex int, mutate func(*Item)) (*Document, bool) {
	if doc == nil || sectionIndex < 0 || sectionIndex >= len(doc.Sections) {
		return doc, false
	}
	section := doc.Sections[sectionIndex]
	if itemIndex < 0 || itemIndex >= len(section.Items) {
		return doc, false
	}

	items := make([]Item, len(section.Items))
	copy(items, section.Items)
	mutate(&items[itemIndex])

	sections := make([]Section, len(doc.Sections))
	copy(sections, doc.Sections)
	section.Items = items
	sections[sectionIndex] = section

	return &Document{EstimateNumber: doc.EstimateNumber, Sections: sections}, true
}
