package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder validates the cart, denormalizes catalog data, calculates
	// totals, and persists the order atomically.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	// GetOrder retrieves a full order with its items by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListDeliveryOrders returns all orders due on a day, optionally for one route.
	ListDeliveryOrders(ctx context.Context, day string, routeID string) ([]*Order, error)

	// ListClientOrders returns all orders placed by a client.
	ListClientOrders(ctx context.Context, clientID string) ([]*Order, error)

	// UpdateOrder replaces an order's items wholesale and recomputes totals.
	UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error)

	// UpdateStatus advances an order to a new lifecycle status.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// DeleteOrder removes an order and its items atomically.
	DeleteOrder(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

// NewService creates a new order service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// validTransitions defines the allowed status state machine.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCancelled},
	StatusDelivered: {},
	StatusCancelled: {},
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	if req.ClientID == "" {
		return nil, fmt.Errorf("client_id is required")
	}
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client_id: %w", err)
	}

	orderDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.OrderDate != "" {
		orderDate, err = time.Parse("2006-01-02", req.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("invalid order_date: %w", err)
		}
	}

	items, total, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	method := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	if method == "" {
		method = PaymentCash
	}

	o := &Order{
		ID:            uuid.New(),
		ClientID:      clientID,
		OrderDate:     orderDate,
		Status:        StatusPending,
		PaymentMethod: method,
		Total:         round2(total),
		Notes:         req.Notes,
		Items:         items,
	}

	if req.RouteID != "" {
		rid, err := uuid.Parse(req.RouteID)
		if err != nil {
			return nil, fmt.Errorf("invalid route_id: %w", err)
		}
		o.RouteID = &rid
	}
	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		o.DeliveryDate = &d
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListDeliveryOrders(ctx context.Context, day string, routeID string) ([]*Order, error) {
	d, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	return s.repo.ListOrdersByDeliveryDate(ctx, d, routeID)
}

func (s *service) ListClientOrders(ctx context.Context, clientID string) ([]*Order, error) {
	return s.repo.ListOrdersByClient(ctx, clientID)
}

func (s *service) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if o.Status == StatusDelivered || o.Status == StatusCancelled {
		return nil, fmt.Errorf("cannot edit a %s order", o.Status)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	items, total, err := s.buildItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		it.OrderID = o.ID
	}
	o.Items = items
	o.Total = round2(total)
	o.Notes = req.Notes

	if req.PaymentMethod != "" {
		o.PaymentMethod = PaymentMethod(strings.ToUpper(req.PaymentMethod))
	}
	if req.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", req.DeliveryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid delivery_date: %w", err)
		}
		o.DeliveryDate = &d
	}

	if err := s.repo.ReplaceOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return o, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	newStatus := OrderStatus(strings.ToUpper(req.Status))
	allowed := validTransitions[o.Status]
	valid := false
	for _, st := range allowed {
		if st == newStatus {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id string) error {
	if _, err := s.repo.GetOrderByID(ctx, id); err != nil {
		return fmt.Errorf("order not found: %w", err)
	}
	return s.repo.DeleteOrder(ctx, id)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// buildItems resolves each cart line against the catalog, denormalizes the
// product data, and recomputes line totals. LineTotal is always derived here;
// it is never accepted from the caller.
func (s *service) buildItems(ctx context.Context, cart []CartItem) ([]*OrderLineItem, float64, error) {
	var items []*OrderLineItem
	var total float64

	for _, ci := range cart {
		if ci.Quantity < 0 {
			return nil, 0, fmt.Errorf("quantity must be >= 0 for product %s", ci.ProductID)
		}
		pid, err := uuid.Parse(ci.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid product_id: %w", err)
		}
		info, err := s.repo.GetProductInfo(ctx, ci.ProductID)
		if err != nil {
			return nil, 0, fmt.Errorf("product %s not found in catalog", ci.ProductID)
		}

		price := info.RegularPrice
		special := false
		if ci.SpecialPrice && info.SpecialPrice != nil {
			price = *info.SpecialPrice
			special = true
		}

		lineTotal := round2(price * float64(ci.Quantity))
		total += lineTotal

		items = append(items, &OrderLineItem{
			ID:           uuid.New(),
			ProductID:    pid,
			ProductName:  info.Name,
			Category:     info.Category,
			VariantLabel: info.VariantLabel,
			Quantity:     ci.Quantity,
			UnitPrice:    price,
			LineTotal:    lineTotal,
			SpecialPrice: special,
		})
	}
	return items, total, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
