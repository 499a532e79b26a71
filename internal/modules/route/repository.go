package route

import "context"

// Repository defines data access for routes and their clients.
type Repository interface {
	CreateRoute(ctx context.Context, rt *Route) error
	GetRouteByID(ctx context.Context, id string) (*Route, error)
	ListRoutes(ctx context.Context, activeOnly bool) ([]*Route, error)

	CreateClient(ctx context.Context, c *Client) error
	GetClientByID(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context, routeID string, activeOnly bool) ([]*Client, error)
}
