package report

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// OverrideLayer holds user-entered corrections for one reporting session,
// keyed by (route, field). A cell not explicitly overridden reads through to
// the computed value; once set, the cell stays pinned until ResetAll. The
// layer is the only mutable state in the engine and is driven by a single
// user at a time, so it carries no locking.
type OverrideLayer struct {
	values map[overrideKey]float64
	gen    uint64
}

type overrideKey struct {
	RouteID uuid.UUID
	Field   string
}

// NewOverrideLayer creates an empty override layer.
func NewOverrideLayer() *OverrideLayer {
	return &OverrideLayer{values: make(map[overrideKey]float64)}
}

// Set pins a cell to a user-entered value. Raw input is coerced: anything
// non-numeric becomes zero, matching the forgiving-input policy of the rest
// of the system.
func (l *OverrideLayer) Set(routeID uuid.UUID, field, raw string) {
	l.values[overrideKey{RouteID: routeID, Field: field}] = CoerceValue(raw)
	l.gen++
}

// Get returns the override for a cell, or the supplied computed value when
// none is set.
func (l *OverrideLayer) Get(routeID uuid.UUID, field string, computed float64) float64 {
	if v, ok := l.values[overrideKey{RouteID: routeID, Field: field}]; ok {
		return v
	}
	return computed
}

// Has reports whether a cell is explicitly overridden.
func (l *OverrideLayer) Has(routeID uuid.UUID, field string) bool {
	_, ok := l.values[overrideKey{RouteID: routeID, Field: field}]
	return ok
}

// ResetAll discards every override, reverting all cells to computed values.
func (l *OverrideLayer) ResetAll() {
	l.values = make(map[overrideKey]float64)
	l.gen++
}

// Generation increments on every mutation; callers use it to key caches so a
// fixed (snapshot, generation) pair always yields identical query results.
func (l *OverrideLayer) Generation() uint64 {
	return l.gen
}

// CoerceValue parses user input as a number, coercing malformed input to
// zero. Never fails.
func CoerceValue(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// FieldKey builds the override field name for a flavor cell. Category-level
// cells use the bare canonical category name.
func FieldKey(category string, bucket FlavorBucket) string {
	return CanonicalCategory(category) + "/" + string(bucket)
}
