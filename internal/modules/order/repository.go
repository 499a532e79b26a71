package order

import (
	"context"
	"time"
)

// ProductInfo is the catalog data an order captures per line at order time.
type ProductInfo struct {
	Name         string
	Category     string
	VariantLabel string
	RegularPrice float64
	SpecialPrice *float64
}

// Repository defines data access for orders.
type Repository interface {
	// CreateOrder persists a new order and its items atomically in a transaction.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items by UUID.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListOrdersByDeliveryDate returns all orders due on a given day, optionally
	// restricted to one route.
	ListOrdersByDeliveryDate(ctx context.Context, day time.Time, routeID string) ([]*Order, error)

	// ListOrdersByClient returns all orders placed by a specific client.
	ListOrdersByClient(ctx context.Context, clientID string) ([]*Order, error)

	// ReplaceOrder rewrites the order header and all its items in one
	// transaction. Items are replaced wholesale, never patched.
	ReplaceOrder(ctx context.Context, o *Order) error

	// UpdateStatus advances an order to a new status.
	UpdateStatus(ctx context.Context, id string, status OrderStatus) error

	// DeleteOrder removes the order and its items atomically.
	DeleteOrder(ctx context.Context, id string) error

	// GetProductInfo fetches catalog data to denormalize into a line item.
	GetProductInfo(ctx context.Context, productID string) (*ProductInfo, error)
}
