package estimate

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/buildledger/estimate-api/internal/money"
	"github.com/buildledger/estimate-api/internal/obs"
	"github.com/buildledger/estimate-api/internal/source"
)

// ErrNotLoaded is returned while no document has been successfully
// normalized yet.
var ErrNotLoaded = errors.New("estimate document not loaded")

// Service owns the current document snapshot, the single editing-cell
// reference, and the grand-total listener. All operations serialize on one
// mutex, so the listener always observes totals in the order edits were
// applied.
type Service struct {
	Source source.Client
	Logger zerolog.Logger

	// OnGrandTotal is invoked once after a successful load and once after
	// every applied edit, never with a stale value and never for a
	// rejected or out-of-range edit. It runs with the service lock held
	// and must not call back into the service.
	OnGrandTotal func(money.Money)

	mu      sync.Mutex
	doc     *Document
	editing *CellRef
}

// Load fetches the raw payload, normalizes it and publishes the first
// snapshot. A transport error propagates untouched; a shape error is
// logged with the offending payload for diagnosis.
func (s *Service) Load(ctx context.Context) error {
	if s.Source == nil {
		return errors.New("estimate source not configured")
	}
	raw, err := s.Source.Fetch(ctx)
	if err != nil {
		countLoad("fetch_error")
		return err
	}
	doc, err := Normalize(raw)
	if err != nil {
		s.Logger.Error().Err(err).Bytes("payload", truncatePayload(raw)).Msg("estimate payload rejected")
		countLoad("shape_error")
		return err
	}
	countLoad("ok")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.editing = nil
	s.notifyLocked()
	return nil
}

// Snapshot returns the current document. Snapshots are immutable; edits
// publish replacements.
func (s *Service) Snapshot() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	return s.doc, nil
}

// Editing returns the cell currently in editing state, or nil.
func (s *Service) Editing() *CellRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editing == nil {
		return nil
	}
	ref := *s.editing
	return &ref
}

// StartEditing puts the referenced cell into editing state, implicitly
// returning any previously editing cell to viewing. References outside the
// document are ignored.
func (s *Service) StartEditing(ref CellRef) bool {
	if ref.Field != FieldQuantity && ref.Field != FieldUnitCost {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil || ref.SectionIndex < 0 || ref.SectionIndex >= len(s.doc.Sections) {
		return false
	}
	if ref.ItemIndex < 0 || ref.ItemIndex >= len(s.doc.Sections[ref.SectionIndex].Items) {
		return false
	}
	s.editing = &ref
	return true
}

// StopEditing commits the editing cell back to viewing state. A cell whose
// pending text was cleared commits as "0" first, so leaving an emptied
// cell never strands a stale total.
func (s *Service) StopEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := s.editing
	s.editing = nil
	if ref == nil || s.doc == nil {
		return
	}
	if ref.SectionIndex >= len(s.doc.Sections) || ref.ItemIndex >= len(s.doc.Sections[ref.SectionIndex].Items) {
		return
	}
	item := s.doc.Sections[ref.SectionIndex].Items[ref.ItemIndex]
	pending := item.QuantityText
	if ref.Field == FieldUnitCost {
		pending = item.UnitCostText
	}
	if pending == nil || *pending != "" {
		return
	}
	s.applyLocked(ref.SectionIndex, ref.ItemIndex, "0", ref.Field)
}

// EditQuantity applies raw quantity text to the targeted item and reports
// whether the edit was accepted along with the resulting grand total.
func (s *Service) EditQuantity(sectionIndex, itemIndex int, text string) (bool, money.Money, error) {
	return s.edit(sectionIndex, itemIndex, text, FieldQuantity)
}

// EditUnitCost applies raw unit-cost text (major units) to the targeted
// item.
func (s *Service) EditUnitCost(sectionIndex, itemIndex int, text string) (bool, money.Money, error) {
	return s.edit(sectionIndex, itemIndex, text, FieldUnitCost)
}

func (s *Service) edit(sectionIndex, itemIndex int, text string, field Field) (bool, money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return false, 0, ErrNotLoaded
	}
	applied := s.applyLocked(sectionIndex, itemIndex, text, field)
	return applied, GrandTotal(s.doc.Sections), nil
}

func (s *Service) applyLocked(sectionIndex, itemIndex int, text string, field Field) bool {
	apply := ApplyQuantityEdit
	if field == FieldUnitCost {
		apply = ApplyUnitCostEdit
	}
	next, applied := apply(s.doc, sectionIndex, itemIndex, text)
	if obs.CellEditTotal != nil {
		result := "rejected"
		if applied {
			result = "applied"
		}
		obs.CellEditTotal.WithLabelValues(string(field), result).Inc()
	}
	if !applied {
		return false
	}
	s.doc = next
	s.notifyLocked()
	return true
}

func (s *Service) notifyLocked() {
	grand := GrandTotal(s.doc.Sections)
	if obs.GrandTotalMinorUnits != nil {
		obs.GrandTotalMinorUnits.Set(float64(grand))
	}
	if s.OnGrandTotal != nil {
		s.OnGrandTotal(grand)
	}
}

func countLoad(result string) {
	if obs.DocumentLoadTotal != nil {
		obs.DocumentLoadTotal.WithLabelValues(result).Inc()
	}
}

// truncatePayload bounds how much of a rejected payload lands in the log.
func truncatePayload(raw []byte) []byte {
	const max = 2048
	if len(raw) <= max {
		return raw
	}
	return raw[:max]
}
