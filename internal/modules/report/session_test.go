package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

// Spec scenario: one order on R1 with Chocolate Donut ×12 and Chocolate
// Coconut Donut ×6 totals 18 donuts, split 12 chocolate / 6 chocolate+coconut
// — never 18 chocolate.
func TestSessionCategoryTotalAndBreakdown(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1,
			lineFor(fixtureChocDonut, 12),
			lineFor(fixtureChocCocoDonut, 6),
		),
	)
	s := testSession(snap)

	total := s.CategoryTotal("Donut")
	assert.Equal(t, 18, total.Quantity)
	assert.InDelta(t, 12*10.0+6*12.0, total.Amount, 1e-9)

	breakdown := s.BucketBreakdown("Donut")
	assert.Equal(t, 12, breakdown[BucketChocolate])
	assert.Equal(t, 6, breakdown[BucketChocolateCoconut])
	assert.Equal(t, 0, breakdown[BucketGlazed])
}

// Conservation: bucket sums == category total == sum of per-route values.
func TestSessionConservation(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12), lineFor(fixtureGlazedDonut, 7)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureChocCocoDonut, 6), lineFor(fixtureChocDonut, 5)),
	)
	s := testSession(snap)

	category := s.CategoryTotal("donut").Quantity

	bucketSum := 0
	for _, qty := range s.BucketBreakdown("donut") {
		bucketSum += qty
	}
	require.Equal(t, category, bucketSum, "bucket sum must reconcile with category total")

	routeSum := s.RouteCategoryValue(fixtureRoute1.ID, "donut") +
		s.RouteCategoryValue(fixtureRoute2.ID, "donut")
	require.Equal(t, category, routeSum, "route sum must reconcile with category total")
	require.Equal(t, 30, category)
}

// An order can sit on a route deactivated after it was placed. Its units must
// still land in the category total and its route cell must still resolve, or
// conservation breaks.
func TestSessionDeactivatedRouteStillCounted(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 10)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureChocDonut, 7)),
	)
	snap.Routes = []*route.Route{fixtureRoute1}
	s := testSession(snap)

	total := s.CategoryTotal("donut")
	require.Equal(t, 17, total.Quantity)
	assert.Equal(t, 7, s.RouteCategoryValue(fixtureRoute2.ID, "donut"))

	routeSum := s.RouteCategoryValue(fixtureRoute1.ID, "donut") +
		s.RouteCategoryValue(fixtureRoute2.ID, "donut")
	assert.Equal(t, total.Quantity, routeSum)
}

func TestSessionUnresolvedProductDualTreatment(t *testing.T) {
	ghost := lineFor(fixtureChocDonut, 4)
	ghost.ProductID = uuid.MustParse("deadbeef-0000-0000-0000-000000000000")
	ghost.LineTotal = 40

	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12), ghost),
	)
	s := testSession(snap)

	// Raw category totals keep the unresolved line, units and revenue.
	total := s.CategoryTotal("donut")
	assert.Equal(t, 16, total.Quantity)
	assert.InDelta(t, 160.0, total.Amount, 1e-9)

	// Bucketed views drop it.
	assert.Equal(t, 12, s.BucketBreakdown("donut")[BucketChocolate])

	// And so does the pivot matrix, while its financial grand total keeps it.
	pivot := s.Pivot(ColumnOrder{})
	assert.Equal(t, 12, pivot.GrandTotal.Quantity)
	assert.InDelta(t, 160.0, pivot.GrandTotal.Amount, 1e-9)
}

func TestSessionOverridePrecedence(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureChocDonut, 8)),
	)
	s := testSession(snap)
	require.Equal(t, 20, s.CategoryTotal("donut").Quantity)

	// Route-level override flows into the category total.
	s.SetOverride(fixtureRoute1.ID, "donut", "30")
	assert.Equal(t, 30, s.RouteCategoryValue(fixtureRoute1.ID, "donut"))
	assert.Equal(t, 38, s.CategoryTotal("donut").Quantity)

	// Packing reconverts from the overridden total, not the stale one.
	assert.Equal(t, Packing{Packs: 1, Remainder: 8}, s.CategoryPacking("donut"))

	// Reset restores computed values exactly.
	s.ResetOverrides()
	assert.Equal(t, 20, s.CategoryTotal("donut").Quantity)
	assert.Equal(t, 12, s.RouteCategoryValue(fixtureRoute1.ID, "donut"))
}

func TestSessionBucketOverrideFlowsUpward(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1,
			lineFor(fixtureChocDonut, 12),
			lineFor(fixtureGlazedDonut, 6),
		),
	)
	s := testSession(snap)

	s.SetOverride(fixtureRoute1.ID, FieldKey("donut", BucketChocolate), "20")

	assert.Equal(t, 20, s.BucketBreakdown("donut")[BucketChocolate])
	assert.Equal(t, 6, s.BucketBreakdown("donut")[BucketGlazed])
	// Category total re-derives from the adjusted bucket, not the stale sum.
	assert.Equal(t, 26, s.CategoryTotal("donut").Quantity)
}

func TestSessionOverrideMalformedValue(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12)),
	)
	s := testSession(snap)

	s.SetOverride(fixtureRoute1.ID, "donut", "garbage")
	assert.Equal(t, 0, s.CategoryTotal("donut").Quantity)
}

func TestSessionIdempotentQueries(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12), lineFor(fixturePineFilled, 40)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureStrawFilled, 21)),
	)
	s := testSession(snap)

	first := s.CategoryTotal("filled")
	pivotFirst := s.Pivot(ColumnOrder{})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.CategoryTotal("filled"))
		assert.Equal(t, pivotFirst, s.Pivot(ColumnOrder{}))
	}
}

// Spec scenario: 61 filled items tray at 30 as {2,1}; the same 61 split
// 40/21 cans per flavor at 25 independently, without borrowing the category
// divisor.
func TestSessionFilledDualDivisors(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixturePineFilled, 40)),
		orderFor(fixtureRoute2, fixtureClient2, lineFor(fixtureStrawFilled, 21)),
	)
	s := testSession(snap)

	require.Equal(t, 61, s.CategoryTotal("filled").Quantity)
	assert.Equal(t, Packing{Packs: 2, Remainder: 1}, s.CategoryPacking("filled"))

	cans := s.FlavorPacking("filled")
	assert.Equal(t, Packing{Packs: 1, Remainder: 15}, cans[BucketPineapple])
	assert.Equal(t, Packing{Packs: 0, Remainder: 21}, cans[BucketStrawberry])
}

func TestSessionRouteLessOrdersCount(t *testing.T) {
	snap := fixtureSnapshot(
		orderFor(nil, fixtureClient1, lineFor(fixtureChocDonut, 9)),
		orderFor(fixtureRoute1, fixtureClient2, lineFor(fixtureChocDonut, 3)),
	)
	s := testSession(snap)

	assert.Equal(t, 12, s.CategoryTotal("donut").Quantity)
	assert.Equal(t, 9, s.RouteCategoryValue(uuid.Nil, "donut"))
}

func TestSessionSharedOverridesSurviveReload(t *testing.T) {
	overrides := NewOverrideLayer()
	snap := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12)),
	)

	s1 := NewSession(snap, overrides, DefaultPacking, zerolog.Nop())
	s1.SetOverride(fixtureRoute1.ID, "donut", "50")

	// A fresh session over a reloaded snapshot sees the same overrides.
	reloaded := fixtureSnapshot(
		orderFor(fixtureRoute1, fixtureClient1, lineFor(fixtureChocDonut, 12)),
	)
	reloaded.Version = "test-v2"
	s2 := NewSession(reloaded, overrides, DefaultPacking, zerolog.Nop())
	assert.Equal(t, 50, s2.CategoryTotal("donut").Quantity)
}

func TestSessionEmptySnapshot(t *testing.T) {
	s := testSession(fixtureSnapshot())
	assert.Equal(t, Totals{}, s.CategoryTotal("donut"))
	assert.Equal(t, Packing{Packs: 0, Remainder: 0}, s.CategoryPacking("donut"))
	assert.Empty(t, s.Pivot(ColumnOrder{}).Columns)
}

func TestSessionZeroQuantityLines(t *testing.T) {
	zero := lineFor(fixtureChocDonut, 0)
	snap := fixtureSnapshot(orderFor(fixtureRoute1, fixtureClient1, zero, lineFor(fixtureGlazedDonut, 5)))
	s := testSession(snap)
	assert.Equal(t, 5, s.CategoryTotal("donut").Quantity)
	assert.Equal(t, 0, s.BucketBreakdown("donut")[BucketChocolate])
}
