package route

import (
	"time"

	"github.com/google/uuid"
)

// Route is a delivery route. Code is the short human identifier drivers and
// production sheets use (e.g. "R1", "CENTRO").
type Route struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Client is a customer assigned to a delivery route.
type Client struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	RouteID   *uuid.UUID `json:"route_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateRouteRequest is the payload for creating a route.
type CreateRouteRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CreateClientRequest is the payload for creating a client.
type CreateClientRequest struct {
	Name    string `json:"name"`
	RouteID string `json:"route_id,omitempty"`
}
