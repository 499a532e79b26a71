package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

func pivotItems(snap *Snapshot) []IndexedItem {
	return BuildIndex(snap, zerolog.Nop())
}

func TestBuildPivotTotals(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12), lineFor(fixtureGlazedDonut, 4)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureChocDonut, 8)),
	)
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	require.Len(t, table.Rows, 2)
	// Rows sorted by route code.
	assert.Equal(t, "R1", table.Rows[0].RouteCode)
	assert.Equal(t, "R2", table.Rows[1].RouteCode)

	assert.Equal(t, 16, table.Rows[0].Total)
	assert.Equal(t, 8, table.Rows[1].Total)
	assert.Equal(t, 12, table.Rows[0].Cells[fixtureChocDonut.ID.String()])
	assert.Equal(t, 8, table.Rows[1].Cells[fixtureChocDonut.ID.String()])

	assert.Equal(t, 20, table.ColumnTotals[fixtureChocDonut.ID.String()])
	assert.Equal(t, 4, table.ColumnTotals[fixtureGlazedDonut.ID.String()])
	assert.Equal(t, 24, table.GrandTotal.Quantity)
	assert.InDelta(t, 12*10.0+4*9.0+8*10.0, table.GrandTotal.Amount, 1e-9)
}

// Row totals, column totals and the grand total must all reconcile.
func TestBuildPivotConservation(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12), lineFor(fixturePineFilled, 40)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureGlazedDonut, 7), lineFor(fixtureStrawFilled, 21)),
	)
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	rowSum, colSum := 0, 0
	for _, row := range table.Rows {
		rowSum += row.Total
	}
	for _, total := range table.ColumnTotals {
		colSum += total
	}
	assert.Equal(t, table.GrandTotal.Quantity, rowSum)
	assert.Equal(t, table.GrandTotal.Quantity, colSum)
}

// Units on a route missing from the route list (deactivated while its orders
// were still pending) get their own row; row, column and grand totals must
// still reconcile.
func TestBuildPivotRouteMissingFromListKeepsRow(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 10)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureChocDonut, 7)),
	)
	snap.Routes = []*route.Route{fixtureRoute1}
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	require.Len(t, table.Rows, 2)
	var extra *PivotRow
	for i := range table.Rows {
		if table.Rows[i].RouteID == fixtureRoute2.ID {
			extra = &table.Rows[i]
		}
	}
	require.NotNil(t, extra, "route absent from the list must still get a row")
	assert.Equal(t, 7, extra.Total)

	rowSum := 0
	for _, row := range table.Rows {
		rowSum += row.Total
	}
	assert.Equal(t, 17, table.GrandTotal.Quantity)
	assert.Equal(t, table.GrandTotal.Quantity, rowSum)
}

func TestBuildPivotOmitsZeroColumns(t *testing.T) {
	// Only chocolate donuts ordered: every other product disappears.
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12)),
	)
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	require.Len(t, table.Columns, 1)
	assert.Equal(t, fixtureChocDonut.ID, table.Columns[0].ProductID)
}

func TestBuildPivotColumnOrderPermutation(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1,
			lineFor(fixtureChocDonut, 1),
			lineFor(fixtureGlazedDonut, 1),
			lineFor(fixturePineFilled, 1),
		),
	)
	items := pivotItems(snap)

	// Default: catalog order.
	table := BuildPivot(snap.Routes, snap.Products, items, ColumnOrder{})
	require.Len(t, table.Columns, 3)
	assert.Equal(t, fixtureChocDonut.ID, table.Columns[0].ProductID)

	// Persisted order puts glazed first; unlisted products keep catalog
	// order after the listed ones.
	ordered := ColumnOrder{Products: []string{fixtureGlazedDonut.ID.String()}}
	table = BuildPivot(snap.Routes, snap.Products, items, ordered)
	assert.Equal(t, fixtureGlazedDonut.ID, table.Columns[0].ProductID)
	assert.Equal(t, fixtureChocDonut.ID, table.Columns[1].ProductID)
	assert.Equal(t, fixturePineFilled.ID, table.Columns[2].ProductID)

	// Ordering is a permutation: totals are unaffected.
	assert.Equal(t, 3, table.GrandTotal.Quantity)
}

func TestBuildPivotUnassignedRow(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(nil, fixtureClient1, lineFor(fixtureChocDonut, 5)),
		orderFor(fixtureRoute1, fixtureClient2, lineFor(fixtureChocDonut, 3)),
	)
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	require.Len(t, table.Rows, 3)
	last := table.Rows[len(table.Rows)-1]
	assert.Equal(t, uuid.Nil, last.RouteID)
	assert.Equal(t, 5, last.Total)
	assert.Equal(t, 8, table.GrandTotal.Quantity)
}

func TestBuildPivotUnresolvedExcludedFromMatrix(t *testing.T) {
	ghost := lineFor(fixtureChocDonut, 4)
	ghost.ProductID = uuid.MustParse("deadbeef-0000-0000-0000-000000000000")
	ghost.LineTotal = 99

	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12), ghost),
	)
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	assert.Equal(t, 12, table.Rows[0].Total)
	assert.Equal(t, 12, table.GrandTotal.Quantity)
	// The unresolved line's revenue still counts.
	assert.InDelta(t, 120.0+99.0, table.GrandTotal.Amount, 1e-9)
}

func TestBuildPivotZeroFilledRows(t *testing.T) {
	// R2 has no orders but still gets a row of zeroes.
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 2)),
	)
	table := BuildPivot(snap.Routes, snap.Products, pivotItems(snap), ColumnOrder{})

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 0, table.Rows[1].Total)
}
