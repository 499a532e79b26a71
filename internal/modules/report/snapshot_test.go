package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hornoazul/panaderia-backend/internal/modules/order"
	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

func TestRoutesInScopeKeepsDeactivatedRouteWithOrders(t *testing.T) {
	active := &route.Route{ID: uuid.New(), Code: "R1", IsActive: true}
	retired := &route.Route{ID: uuid.New(), Code: "R9", IsActive: false}
	dead := &route.Route{ID: uuid.New(), Code: "R0", IsActive: false}

	orders := []*order.Order{
		{ID: uuid.New(), RouteID: &retired.ID},
	}

	scoped := routesInScope([]*route.Route{active, retired, dead}, orders)

	require.Len(t, scoped, 2)
	assert.Contains(t, scoped, active)
	assert.Contains(t, scoped, retired, "deactivated route with pending orders must stay in scope")
	assert.NotContains(t, scoped, dead)
}

func TestRoutesInScopeIgnoresRouteLessOrders(t *testing.T) {
	active := &route.Route{ID: uuid.New(), Code: "R1", IsActive: true}
	dead := &route.Route{ID: uuid.New(), Code: "R0", IsActive: false}

	orders := []*order.Order{{ID: uuid.New()}}

	scoped := routesInScope([]*route.Route{active, dead}, orders)
	require.Len(t, scoped, 1)
	assert.Equal(t, active, scoped[0])
}
