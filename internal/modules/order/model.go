package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusReady     OrderStatus = "READY"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// PaymentMethod indicates how the client settles the order.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentCredit   PaymentMethod = "CREDIT"
)

// Order represents a client's bakery order.
type Order struct {
	ID            uuid.UUID        `json:"id"`
	ClientID      uuid.UUID        `json:"client_id"`
	RouteID       *uuid.UUID       `json:"route_id,omitempty"` // nil for pickup orders
	OrderDate     time.Time        `json:"order_date"`
	DeliveryDate  *time.Time       `json:"delivery_date,omitempty"`
	Status        OrderStatus      `json:"status"`
	PaymentMethod PaymentMethod    `json:"payment_method"`
	Total         float64          `json:"total"`
	Notes         string           `json:"notes,omitempty"`
	Items         []*OrderLineItem `json:"items,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// OrderLineItem is a single line within an order. Product name, category and
// variant label are captured at order time so historical reports stay stable
// even if the catalog changes later.
type OrderLineItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"order_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	VariantLabel string    `json:"variant_label"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	LineTotal    float64   `json:"line_total"`
	SpecialPrice bool      `json:"special_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CartItem is a transient struct used when placing or editing an order.
type CartItem struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	SpecialPrice bool   `json:"special_price,omitempty"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	ClientID      string     `json:"client_id"`
	RouteID       string     `json:"route_id,omitempty"`
	OrderDate     string     `json:"order_date,omitempty"` // YYYY-MM-DD, defaults to today
	DeliveryDate  string     `json:"delivery_date,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Items         []CartItem `json:"items"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateOrderRequest replaces an order's line items wholesale; orders are
// never patched item by item.
type UpdateOrderRequest struct {
	DeliveryDate  string     `json:"delivery_date,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	Items         []CartItem `json:"items"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
