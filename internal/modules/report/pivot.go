package report

import (
	"sort"

	"github.com/google/uuid"

	"github.com/hornoazul/panaderia-backend/internal/modules/catalog"
	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

// PivotColumn is one visible product column.
type PivotColumn struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
}

// PivotRow holds one route's quantity per visible product plus the row total.
// Cells are keyed by product id string; absent products render as zero.
type PivotRow struct {
	RouteID   uuid.UUID      `json:"route_id"`
	RouteCode string         `json:"route_code"`
	RouteName string         `json:"route_name"`
	Cells     map[string]int `json:"cells"`
	Total     int            `json:"total"`
}

// PivotTable is the route × product matrix with row, column and grand totals.
//
// GrandTotal.Quantity sums the visible matrix (resolved items only) so the
// conservation check against rows and columns holds; GrandTotal.Amount sums
// every line including unresolved references, so revenue never silently
// disappears from the financial total.
type PivotTable struct {
	Columns      []PivotColumn  `json:"columns"`
	Rows         []PivotRow     `json:"rows"`
	ColumnTotals map[string]int `json:"column_totals"`
	GrandTotal   AggregateCell  `json:"grand_total"`
}

// unassignedRowCode labels the synthetic row for orders without a route.
const unassignedRowCode = "SIN RUTA"

// BuildPivot assembles the pivot matrix. Columns with zero quantity across
// every row are omitted entirely: the visible column set follows the filtered
// item set, not the catalog. Column ordering is the caller's persisted order
// applied as a stable permutation over catalog order; the builder itself
// assumes no fixed ordering.
func BuildPivot(routes []*route.Route, products []*catalog.Product, items []IndexedItem, order ColumnOrder) *PivotTable {
	cells := Sum(items, DimRoute, DimProduct)
	columnTotals := Sum(items, DimProduct)

	visible := visibleColumns(products, columnTotals, order)

	rows := buildRows(routes, items)
	for i := range rows {
		for _, col := range visible {
			key := rows[i].RouteID.String() + keySeparator + col.ProductID.String()
			if cell, ok := cells[key]; ok {
				rows[i].Cells[col.ProductID.String()] = cell.Quantity
				rows[i].Total += cell.Quantity
			}
		}
	}

	totals := make(map[string]int, len(visible))
	grand := AggregateCell{}
	for _, col := range visible {
		q := columnTotals[col.ProductID.String()].Quantity
		totals[col.ProductID.String()] = q
		grand.Quantity += q
	}
	grand.Amount = GrandTotal(items).Amount

	return &PivotTable{
		Columns:      visible,
		Rows:         rows,
		ColumnTotals: totals,
		GrandTotal:   grand,
	}
}

// visibleColumns filters zero-quantity products out and applies the persisted
// column order: listed products first in their stored sequence, everything
// else after in catalog order (a stable permutation).
func visibleColumns(products []*catalog.Product, totals map[string]AggregateCell, order ColumnOrder) []PivotColumn {
	var cols []PivotColumn
	for _, p := range products {
		if totals[p.ID.String()].Quantity == 0 {
			continue
		}
		cols = append(cols, PivotColumn{ProductID: p.ID, Name: p.Name, Category: CanonicalCategory(p.Category)})
	}

	rank := make(map[string]int, len(order.Products))
	for i, id := range order.Products {
		rank[id] = i
	}
	sort.SliceStable(cols, func(i, j int) bool {
		ri, iOK := rank[cols[i].ProductID.String()]
		rj, jOK := rank[cols[j].ProductID.String()]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		}
		return false // both unranked: keep catalog order
	})
	return cols
}

// buildRows emits one row per supplied route plus one per route the items
// reference beyond that list. An order can sit on a route deactivated after it
// was placed; its units still have to land in some row or the row sums stop
// reconciling with the column totals.
func buildRows(routes []*route.Route, items []IndexedItem) []PivotRow {
	sorted := make([]*route.Route, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	rows := make([]PivotRow, 0, len(sorted)+1)
	seen := make(map[uuid.UUID]bool, len(sorted))
	for _, rt := range sorted {
		if seen[rt.ID] {
			continue
		}
		seen[rt.ID] = true
		rows = append(rows, PivotRow{
			RouteID:   rt.ID,
			RouteCode: rt.Code,
			RouteName: rt.Name,
			Cells:     make(map[string]int),
		})
	}

	for _, item := range items {
		if !item.Resolved || seen[item.RouteID] {
			continue
		}
		seen[item.RouteID] = true
		code, name := unassignedRowCode, "Unassigned"
		if item.RouteID != uuid.Nil {
			code, name = item.RouteID.String()[:8], "Unknown route"
		}
		rows = append(rows, PivotRow{
			RouteID:   item.RouteID,
			RouteCode: code,
			RouteName: name,
			Cells:     make(map[string]int),
		})
	}
	return rows
}
