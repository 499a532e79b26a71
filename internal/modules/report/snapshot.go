package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hornoazul/panaderia-backend/internal/modules/catalog"
	"github.com/hornoazul/panaderia-backend/internal/modules/order"
	"github.com/hornoazul/panaderia-backend/internal/modules/route"
)

// SnapshotLoader hands the engine a consistent read of orders and catalogs
// for one delivery day, optionally restricted to one route. The engine only
// ever sees the resulting Snapshot; it never reaches into the store itself.
type SnapshotLoader interface {
	Load(ctx context.Context, day time.Time, routeID string) (*Snapshot, error)
}

// Loader assembles snapshots from the application repositories.
type Loader struct {
	orders   order.Repository
	products catalog.Repository
	routes   route.Repository
}

// NewLoader creates a snapshot loader over the given repositories.
func NewLoader(orders order.Repository, products catalog.Repository, routes route.Repository) *Loader {
	return &Loader{orders: orders, products: products, routes: routes}
}

// Load builds a snapshot for the given day. Products are loaded without the
// active filter: historical order lines may reference deactivated products,
// and those must still resolve. Routes follow the same logic: a route
// deactivated while it still has orders on the day stays in the snapshot, so
// its units keep their row; inactive routes without orders are dropped to keep
// quiet dead routes off the reports.
func (l *Loader) Load(ctx context.Context, day time.Time, routeID string) (*Snapshot, error) {
	orders, err := l.orders.ListOrdersByDeliveryDate(ctx, day, routeID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	products, err := l.products.List(ctx, "", false)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	routes, err := l.routes.ListRoutes(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	clients, err := l.routes.ListClients(ctx, "", true)
	if err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}

	routes = routesInScope(routes, orders)
	if routeID != "" {
		routes = filterRoutes(routes, routeID)
	}

	return &Snapshot{
		Version:  snapshotVersion(day, routeID, len(orders)),
		Orders:   orders,
		Products: products,
		Routes:   routes,
		Clients:  clients,
	}, nil
}

// routesInScope keeps active routes plus any deactivated route that still has
// orders on the day.
func routesInScope(routes []*route.Route, orders []*order.Order) []*route.Route {
	referenced := make(map[uuid.UUID]bool)
	for _, o := range orders {
		if o.RouteID != nil {
			referenced[*o.RouteID] = true
		}
	}
	var out []*route.Route
	for _, rt := range routes {
		if rt.IsActive || referenced[rt.ID] {
			out = append(out, rt)
		}
	}
	return out
}

func filterRoutes(routes []*route.Route, routeID string) []*route.Route {
	var out []*route.Route
	for _, rt := range routes {
		if rt.ID.String() == routeID {
			out = append(out, rt)
		}
	}
	return out
}

// snapshotVersion keys the session memo cache. It only has to change when
// the underlying data may have changed, so load time plus scope is enough.
func snapshotVersion(day time.Time, routeID string, orderCount int) string {
	return fmt.Sprintf("%s|%s|%d|%d", day.Format("2006-01-02"), routeID, orderCount, time.Now().UnixNano())
}
