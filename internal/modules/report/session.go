package report

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Totals pairs a unit count with its monetary amount.
type Totals struct {
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// Session is the query facade over one snapshot for one reporting session.
// Every query is deterministic for a fixed (snapshot, override generation)
// pair, and results are memoized under exactly that key, so recomputation on
// every render is safe and cheap.
//
// Overrides adjust unit quantities at the route level — the lowest layer the
// reports consume — and every total above (category totals, packing
// conversions, grand totals) is re-derived from the adjusted values.
// Monetary amounts are never overridden.
type Session struct {
	snap      *Snapshot
	items     []IndexedItem
	overrides *OverrideLayer
	packing   PackingConfig
	cache     map[string]interface{}
	logger    zerolog.Logger
}

// NewSession indexes a snapshot. A nil overrides layer gets a fresh one;
// passing a shared layer lets overrides survive snapshot reloads within the
// same reporting session.
func NewSession(snap *Snapshot, overrides *OverrideLayer, packing PackingConfig, logger zerolog.Logger) *Session {
	if overrides == nil {
		overrides = NewOverrideLayer()
	}
	return &Session{
		snap:      snap,
		items:     BuildIndex(snap, logger),
		overrides: overrides,
		packing:   packing,
		cache:     make(map[string]interface{}),
		logger:    logger,
	}
}

// Items exposes the classified item index (read-only by convention).
func (s *Session) Items() []IndexedItem { return s.items }

// SetOverride pins a (route, field) cell to a user-entered value. Field is
// either a canonical category name or "<category>/<bucket>".
func (s *Session) SetOverride(routeID uuid.UUID, field, raw string) {
	s.overrides.Set(routeID, field, raw)
}

// ResetOverrides reverts every cell to its computed value.
func (s *Session) ResetOverrides() {
	s.overrides.ResetAll()
}

// Pivot builds the route × product matrix for the session snapshot with the
// supplied column order. The matrix always shows computed quantities:
// overrides are keyed by category and flavor and have no product-level
// granularity to redistribute into individual cells, so they adjust the
// category, flavor and packing views only.
func (s *Session) Pivot(order ColumnOrder) *PivotTable {
	key := s.cacheKey(fmt.Sprintf("pivot:%v:%v", order.Products, order.Categories))
	if cached, ok := s.cache[key]; ok {
		return cached.(*PivotTable)
	}
	table := BuildPivot(s.snap.Routes, s.snap.Products, s.items, order)
	s.cache[key] = table
	return table
}

// CategoryTotal returns the override-adjusted unit total and the computed
// monetary amount for one category.
func (s *Session) CategoryTotal(category string) Totals {
	cat := CanonicalCategory(category)
	key := s.cacheKey("cattotal:" + cat)
	if cached, ok := s.cache[key]; ok {
		return cached.(Totals)
	}

	t := Totals{}
	for _, routeID := range s.routeIDs() {
		t.Quantity += s.routeCategoryValue(routeID, cat)
	}
	for _, item := range s.items {
		if item.Category == cat {
			t.Amount += item.Amount
		}
	}

	s.cache[key] = t
	return t
}

// BucketBreakdown returns override-adjusted unit totals per flavor bucket for
// one category. Unclassified and unresolved items are excluded here; they
// still count in CategoryTotal.
func (s *Session) BucketBreakdown(category string) map[FlavorBucket]int {
	cat := CanonicalCategory(category)
	key := s.cacheKey("buckets:" + cat)
	if cached, ok := s.cache[key]; ok {
		return cached.(map[FlavorBucket]int)
	}

	out := make(map[FlavorBucket]int)
	for _, bucket := range CategoryBuckets(cat) {
		total := 0
		for _, routeID := range s.routeIDs() {
			total += s.routeBucketValue(routeID, cat, bucket)
		}
		out[bucket] = total
	}

	s.cache[key] = out
	return out
}

// CategoryPacking converts the category's override-adjusted unit total into
// trays using the category's tray divisor.
func (s *Session) CategoryPacking(category string) Packing {
	total := s.CategoryTotal(category)
	return ToPacking(total.Quantity, s.packing.TrayDivisor(category))
}

// FlavorPacking converts each flavor sub-total into cans using the flavor-can
// divisor. This intentionally does not reuse the category tray divisor: the
// combined total and the per-flavor sub-totals are packed as two separate
// operations with different batch sizes.
func (s *Session) FlavorPacking(category string) map[FlavorBucket]Packing {
	out := make(map[FlavorBucket]Packing)
	for bucket, qty := range s.BucketBreakdown(category) {
		out[bucket] = ToPacking(qty, s.packing.FlavorCan)
	}
	return out
}

// RouteCategoryValue returns the override-adjusted unit count for one
// route × category cell.
func (s *Session) RouteCategoryValue(routeID uuid.UUID, category string) int {
	return s.routeCategoryValue(routeID, CanonicalCategory(category))
}

// ── internal computation ──────────────────────────────────────────────────────

// routeCategoryValue resolves one route × category cell: a direct override
// wins outright; otherwise the computed count is adjusted by any flavor-cell
// overrides beneath it, so bucket-level edits flow up into every total.
func (s *Session) routeCategoryValue(routeID uuid.UUID, cat string) int {
	if s.overrides.Has(routeID, cat) {
		return asUnits(s.overrides.Get(routeID, cat, 0))
	}
	value := s.routeCategoryComputed(routeID, cat)
	for _, bucket := range CategoryBuckets(cat) {
		field := FieldKey(cat, bucket)
		if s.overrides.Has(routeID, field) {
			computed := s.routeBucketComputed(routeID, cat, bucket)
			value += asUnits(s.overrides.Get(routeID, field, 0)) - computed
		}
	}
	return value
}

func (s *Session) routeBucketValue(routeID uuid.UUID, cat string, bucket FlavorBucket) int {
	computed := s.routeBucketComputed(routeID, cat, bucket)
	return asUnits(s.overrides.Get(routeID, FieldKey(cat, bucket), float64(computed)))
}

// routeCategoryComputed counts every line in the cell, unresolved references
// and unclassified flavors included.
func (s *Session) routeCategoryComputed(routeID uuid.UUID, cat string) int {
	total := 0
	for _, item := range s.items {
		if item.RouteID == routeID && item.Category == cat {
			total += item.Quantity
		}
	}
	return total
}

// routeBucketComputed counts only resolved, classified lines.
func (s *Session) routeBucketComputed(routeID uuid.UUID, cat string, bucket FlavorBucket) int {
	total := 0
	for _, item := range s.items {
		if item.Resolved && item.RouteID == routeID && item.Category == cat && item.Bucket == bucket {
			total += item.Quantity
		}
	}
	return total
}

// routeIDs lists every route present in the snapshot plus every route an
// order line references, whether or not the route list carries it. Orders can
// sit on a route that was deactivated after they were placed, and route-less
// orders carry uuid.Nil; neither may fall outside the summation, or units
// would drop out of category totals.
func (s *Session) routeIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(s.snap.Routes)+1)
	ids := make([]uuid.UUID, 0, len(s.snap.Routes)+1)
	for _, rt := range s.snap.Routes {
		if !seen[rt.ID] {
			seen[rt.ID] = true
			ids = append(ids, rt.ID)
		}
	}
	for _, item := range s.items {
		if !seen[item.RouteID] {
			seen[item.RouteID] = true
			ids = append(ids, item.RouteID)
		}
	}
	return ids
}

func (s *Session) cacheKey(query string) string {
	return fmt.Sprintf("%s|%d|%s", s.snap.Version, s.overrides.Generation(), query)
}

// asUnits folds an override value to a whole unit count. Overrides are counts
// in practice; fractions round down, negatives clamp to zero so a bad entry
// can never push a packing conversion into a fatal assertion.
func asUnits(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
