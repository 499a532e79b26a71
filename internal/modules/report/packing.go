package report

import (
	"fmt"
	"strings"
)

// Packing is a unit total converted into whole packing units plus the loose
// remainder that does not fill one.
type Packing struct {
	Packs     int `json:"packs"`
	Remainder int `json:"remainder"`
}

// PackingConfig names the production batch sizes. These are business
// constants, not derived values; they are configuration so every report
// section converts with the same divisors.
type PackingConfig struct {
	// TrayLarge is units per tray for large donuts and large filled items.
	TrayLarge int
	// TrayMini is units per tray for the miniature variants of both families.
	TrayMini int
	// FlavorCan is units per can for filled-item per-flavor sub-totals. This
	// deliberately differs from the tray divisor of the same family; category
	// packing and per-flavor packing are distinct operations.
	FlavorCan int
}

// DefaultPacking holds the divisors the bakery packs with today.
var DefaultPacking = PackingConfig{
	TrayLarge: 30,
	TrayMini:  56,
	FlavorCan: 25,
}

// TrayDivisor returns the tray batch size for a category.
func (c PackingConfig) TrayDivisor(category string) int {
	if strings.Contains(CanonicalCategory(category), "mini") {
		return c.TrayMini
	}
	return c.TrayLarge
}

// ToPacking converts a unit total into packs and remainder. Both arguments
// only ever come from internal aggregate computations, so invalid values mean
// an upstream invariant was violated: this panics rather than returning a
// misleading tray count.
func ToPacking(totalUnits, batchSize int) Packing {
	if totalUnits < 0 {
		panic(fmt.Sprintf("report: negative unit total %d reached packing conversion", totalUnits))
	}
	if batchSize <= 0 {
		panic(fmt.Sprintf("report: non-positive batch size %d reached packing conversion", batchSize))
	}
	return Packing{
		Packs:     totalUnits / batchSize,
		Remainder: totalUnits % batchSize,
	}
}
