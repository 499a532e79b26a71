package production

import (
	"github.com/hornoazul/panaderia-backend/internal/modules/report"
)

// Sheet is the daily production sheet: what the bakery has to produce for
// one delivery day, per category and per flavor, already converted into
// packing units.
type Sheet struct {
	Date       string             `json:"date"`
	RouteID    string             `json:"route_id,omitempty"`
	Categories []CategorySection  `json:"categories"`
	Pivot      *report.PivotTable `json:"pivot"`
}

// CategorySection is one category's production line: the combined unit total
// with its tray conversion, and the flavor breakdown beneath it. Flavor can
// conversions only apply to the filled families; for donuts Cans is nil.
//
// The tray count and the flavor can counts use different divisors and are
// reported side by side; neither is derived from the other.
type CategorySection struct {
	Category string         `json:"category"`
	Quantity int            `json:"quantity"`
	Trays    report.Packing `json:"trays"`
	Flavors  []FlavorLine   `json:"flavors"`
}

// FlavorLine is one flavor's sub-total within a category section.
type FlavorLine struct {
	Bucket   report.FlavorBucket `json:"bucket"`
	Quantity int                 `json:"quantity"`
	Cans     *report.Packing     `json:"cans,omitempty"`
}
