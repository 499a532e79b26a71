package production

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hornoazul/panaderia-backend/internal/modules/report"
)

// Service builds production sheets.
type Service interface {
	// BuildSheet assembles the production sheet for one delivery day,
	// optionally restricted to a single route.
	BuildSheet(ctx context.Context, day time.Time, routeID string) (*Sheet, error)
}

// defaultCategories is the sheet's section order when no category order has
// been persisted.
var defaultCategories = []string{
	report.CategoryDonut,
	report.CategoryMiniDonut,
	report.CategoryFilled,
	report.CategoryMiniFilled,
}

type service struct {
	loader    report.SnapshotLoader
	overrides *report.OverrideLayer
	columns   *report.ColumnOrderStore
	packing   report.PackingConfig
	logger    zerolog.Logger
}

// NewService creates a production sheet service. The overrides layer is the
// same one the reporting endpoints mutate, so corrections entered on the
// report screen carry into the sheet's totals and tray counts.
func NewService(loader report.SnapshotLoader, overrides *report.OverrideLayer, columns *report.ColumnOrderStore, packing report.PackingConfig, logger zerolog.Logger) Service {
	return &service{
		loader:    loader,
		overrides: overrides,
		columns:   columns,
		packing:   packing,
		logger:    logger,
	}
}

func (s *service) BuildSheet(ctx context.Context, day time.Time, routeID string) (*Sheet, error) {
	snap, err := s.loader.Load(ctx, day, routeID)
	if err != nil {
		return nil, err
	}
	session := report.NewSession(snap, s.overrides, s.packing, s.logger)
	columnOrder := s.columns.Load()

	sheet := &Sheet{
		Date:    day.Format("2006-01-02"),
		RouteID: routeID,
		Pivot:   session.Pivot(columnOrder),
	}

	for _, category := range sectionOrder(columnOrder) {
		total := session.CategoryTotal(category)
		if total.Quantity == 0 {
			continue
		}
		sheet.Categories = append(sheet.Categories, CategorySection{
			Category: category,
			Quantity: total.Quantity,
			Trays:    session.CategoryPacking(category),
			Flavors:  flavorLines(session, category),
		})
	}
	return sheet, nil
}

// sectionOrder applies the persisted category order as a stable permutation
// over the default section list.
func sectionOrder(order report.ColumnOrder) []string {
	if len(order.Categories) == 0 {
		return defaultCategories
	}
	seen := make(map[string]bool)
	var out []string
	for _, c := range order.Categories {
		c = report.CanonicalCategory(c)
		if isKnownCategory(c) && !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	for _, c := range defaultCategories {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

func isKnownCategory(c string) bool {
	for _, known := range defaultCategories {
		if c == known {
			return true
		}
	}
	return false
}

// flavorLines lists the category's flavor sub-totals in rule priority order.
// Filled flavors get their can conversion; donut flavors are unit counts
// only, since donuts are trayed by the combined category total.
func flavorLines(session *report.Session, category string) []FlavorLine {
	breakdown := session.BucketBreakdown(category)
	filled := strings.Contains(category, "filled")

	var cans map[report.FlavorBucket]report.Packing
	if filled {
		cans = session.FlavorPacking(category)
	}

	var lines []FlavorLine
	for _, bucket := range report.CategoryBuckets(category) {
		qty := breakdown[bucket]
		if qty == 0 {
			continue
		}
		line := FlavorLine{Bucket: bucket, Quantity: qty}
		if filled {
			p := cans[bucket]
			line.Cans = &p
		}
		lines = append(lines, line)
	}
	return lines
}
