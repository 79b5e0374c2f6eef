package estimate

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/buildledger/estimate-api/internal/common"
	"github.com/buildledger/estimate-api/internal/money"
	"github.com/buildledger/estimate-api/internal/source"
)

// Handler wires the estimate service to HTTP.
type Handler struct {
	Svc *Service
}

// Get returns the rendered document: items with display defaults applied,
// per-section totals and the grand total.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	doc, err := h.Svc.Snapshot()
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": renderDocument(doc, h.Svc.Editing()),
	})
}

// Totals returns the grand total and per-section totals without item rows.
func (h *Handler) Totals(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	doc, err := h.Svc.Snapshot()
	if err != nil {
		h.writeError(w, err)
		return
	}
	sections := make([]map[string]any, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		total := SectionTotal(s.Items)
		sections = append(sections, map[string]any{
			"id":           s.ID,
			"name":         s.Name,
			"total":        total,
			"totalDisplay": money.Format(&total),
		})
	}
	grand := GrandTotal(doc.Sections)
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"estimateNumber":    doc.EstimateNumber,
			"sections":          sections,
			"grandTotal":        grand,
			"grandTotalDisplay": money.Format(&grand),
		},
	})
}

// Reload refetches and renormalizes the upstream payload.
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	if err := h.Svc.Load(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.Totals(w, r)
}

// Activate puts a cell into editing state; any previously editing cell
// returns to viewing implicitly.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	var payload struct {
		SectionIndex int    `json:"sectionIndex"`
		ItemIndex    int    `json:"itemIndex"`
		Field        string `json:"field"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	field := Field(payload.Field)
	if field != FieldQuantity && field != FieldUnitCost {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "field must be quantity or unitCost", nil)
		return
	}
	active := h.Svc.StartEditing(CellRef{
		SectionIndex: payload.SectionIndex,
		ItemIndex:    payload.ItemIndex,
		Field:        field,
	})
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"active":  active,
			"editing": renderCellRef(h.Svc.Editing()),
		},
	})
}

// Deactivate commits the editing cell back to viewing. A cleared text
// field commits as "0", so totals may change here.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	h.Svc.StopEditing()
	h.Totals(w, r)
}

// UpdateQuantity applies raw quantity text to one item.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, FieldQuantity)
}

// UpdateUnitCost applies raw unit-cost text (major units) to one item.
func (h *Handler) UpdateUnitCost(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, FieldUnitCost)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, field Field) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "estimate service not configured", nil)
		return
	}
	sectionIndex, err := strconv.Atoi(chi.URLParam(r, "sectionIndex"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid section index", nil)
		return
	}
	itemIndex, err := strconv.Atoi(chi.URLParam(r, "itemIndex"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item index", nil)
		return
	}
	var payload struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	edit := h.Svc.EditQuantity
	if field == FieldUnitCost {
		edit = h.Svc.EditUnitCost
	}
	applied, grand, err := edit(sectionIndex, itemIndex, payload.Value)
	if err != nil {
		h.writeError(w, err)
		return
	}

	body := map[string]any{
		"applied":           applied,
		"grandTotal":        grand,
		"grandTotalDisplay": money.Format(&grand),
	}
	if doc, err := h.Svc.Snapshot(); err == nil && sectionIndex >= 0 && sectionIndex < len(doc.Sections) {
		section := doc.Sections[sectionIndex]
		total := SectionTotal(section.Items)
		body["sectionTotal"] = total
		body["sectionTotalDisplay"] = money.Format(&total)
		if applied {
			body["item"] = renderItem(section.Items[itemIndex])
		}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": body})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotLoaded):
		common.JSONError(w, http.StatusServiceUnavailable, "NOT_READY", "estimate document not loaded", nil)
	case errors.Is(err, source.ErrFetch):
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM_FETCH", "unable to fetch estimate payload", nil)
	case errors.Is(err, ErrInvalidShape):
		common.JSONError(w, http.StatusBadGateway, "UPSTREAM_SHAPE", "estimate payload has an invalid shape", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}

func renderDocument(doc *Document, editing *CellRef) map[string]any {
	sections := make([]map[string]any, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		items := make([]map[string]any, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, renderItem(it))
		}
		total := SectionTotal(s.Items)
		sections = append(sections, map[string]any{
			"id":           s.ID,
			"name":         s.Name,
			"description":  s.Description,
			"items":        items,
			"total":        total,
			"totalDisplay": money.Format(&total),
		})
	}
	grand := GrandTotal(doc.Sections)
	return map[string]any{
		"estimateNumber":    doc.EstimateNumber,
		"sections":          sections,
		"grandTotal":        grand,
		"grandTotalDisplay": money.Format(&grand),
		"editingCell":       renderCellRef(editing),
	}
}

// renderItem applies the display defaults the table applies: empty type
// shows "N/A", empty task name "Unnamed Item". Pending edit text falls
// back to the numeric value when the cell was never typed into.
func renderItem(it Item) map[string]any {
	itemType := it.Type
	if itemType == "" {
		itemType = "N/A"
	}
	taskName := it.TaskName
	if taskName == "" {
		taskName = "Unnamed Item"
	}
	quantityText := it.Quantity.String()
	if it.QuantityText != nil {
		quantityText = *it.QuantityText
	}
	unitCostText := money.MajorText(&it.UnitCost)
	if it.UnitCostText != nil {
		unitCostText = *it.UnitCostText
	}
	return map[string]any{
		"id":              it.ID,
		"type":            itemType,
		"taskName":        taskName,
		"description":     it.Description,
		"quantity":        json.Number(it.Quantity.String()),
		"quantityText":    quantityText,
		"unitCost":        it.UnitCost,
		"unitCostText":    unitCostText,
		"unitCostDisplay": money.Format(&it.UnitCost),
		"unit":            it.Unit,
		"total":           it.Total,
		"totalDisplay":    money.Format(&it.Total),
		"taxApplied":      it.TaxApplied,
		"costCode":        it.CostCode,
	}
}

func renderCellRef(ref *CellRef) map[string]any {
	if ref == nil {
		return nil
	}
	return map[string]any{
		"sectionIndex": ref.SectionIndex,
		"itemIndex":    ref.ItemIndex,
		"field":        string(ref.Field),
	}
}
