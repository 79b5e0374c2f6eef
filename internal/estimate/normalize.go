package estimate

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/buildledger/estimate-api/internal/money"
)

// ErrInvalidShape indicates the payload lacks a sections list at
// data.sections. Callers must treat this as fatal for the document,
// distinct from a transport failure.
var ErrInvalidShape = errors.New("estimate payload missing data.sections")

// flexString accepts JSON strings and bare numbers, since upstream emits
// identifiers and numeric fields inconsistently typed.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}
	*s = ""
	return nil
}

type rawEnvelope struct {
	Data *rawData `json:"data"`
}

type rawData struct {
	EstimateNumber flexString   `json:"estimate_number"`
	Sections       []rawSection `json:"sections"`
}

type rawSection struct {
	CustomSectionID flexString `json:"custom_section_id"`
	SectionID       flexString `json:"section_id"`
	SectionName     string     `json:"section_name"`
	Description     string     `json:"description"`
	Items           []rawItem  `json:"items"`
}

type rawItem struct {
	ItemID              flexString `json:"item_id"`
	ItemTypeDisplayName string     `json:"item_type_display_name"`
	ItemTypeName        string     `json:"item_type_name"`
	Description         string     `json:"description"`
	Quantity            flexString `json:"quantity"`
	UnitCost            flexString `json:"unit_cost"`
	Unit                string     `json:"unit"`
	ApplyGlobalTax      flexString `json:"apply_global_tax"`
	CostCodeName        string     `json:"cost_code_name"`
}

// Normalize converts a raw upstream payload into the canonical Document.
// The payload's unit_cost is already minor units; no scaling is applied
// here. Synthetic identifiers are assigned once, where the source omits
// them, and stay stable for the life of the document.
func Normalize(raw []byte) (*Document, error) {
	var envelope rawEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, ErrInvalidShape
	}
	if envelope.Data == nil || envelope.Data.Sections == nil {
		return nil, ErrInvalidShape
	}

	doc := &Document{
		EstimateNumber: stringOrDefault(string(envelope.Data.EstimateNumber), "N/A"),
		Sections:       make([]Section, 0, len(envelope.Data.Sections)),
	}
	for _, rs := range envelope.Data.Sections {
		section := Section{
			ID:          sectionID(rs),
			Name:        stringOrDefault(rs.SectionName, "Unnamed Section"),
			Description: rs.Description,
			Items:       make([]Item, 0, len(rs.Items)),
		}
		for _, ri := range rs.Items {
			section.Items = append(section.Items, normalizeItem(ri))
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func normalizeItem(ri rawItem) Item {
	qty := money.ParseDecimal(string(ri.Quantity))
	unitCost := money.ParseDecimal(string(ri.UnitCost)).Round(0).IntPart()
	return Item{
		ID:          itemID(ri),
		Type:        ri.ItemTypeDisplayName,
		TaskName:    ri.ItemTypeName,
		Description: ri.Description,
		Quantity:    qty,
		UnitCost:    unitCost,
		Unit:        stringOrDefault(ri.Unit, "EA"),
		Total:       ItemTotal(qty, unitCost),
		TaxApplied:  string(ri.ApplyGlobalTax) == "1",
		CostCode:    ri.CostCodeName,
	}
}

// sectionID resolves identifiers in priority order: custom id, plain id,
// then a generated token. Generated ids only need to be unique within one
// loaded document; they are never persisted.
func sectionID(rs rawSection) string {
	if id := strings.TrimSpace(string(rs.CustomSectionID)); id != "" {
		return id
	}
	if id := strings.TrimSpace(string(rs.SectionID)); id != "" {
		return id
	}
	return "section-" + uuid.NewString()
}

func itemID(ri rawItem) string {
	if id := strings.TrimSpace(string(ri.ItemID)); id != "" {
		return id
	}
	return "item-" + uuid.NewString()
}

func stringOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
