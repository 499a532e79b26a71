package route

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines route and client business logic.
type Service interface {
	CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error)
	GetRoute(ctx context.Context, id string) (*Route, error)
	ListRoutes(ctx context.Context, activeOnly bool) ([]*Route, error)

	CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	ListClients(ctx context.Context, routeID string, activeOnly bool) ([]*Client, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateRoute(ctx context.Context, req CreateRouteRequest) (*Route, error) {
	if req.Code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	rt := &Route{
		ID:       uuid.New(),
		Code:     req.Code,
		Name:     req.Name,
		IsActive: true,
	}
	if err := s.repo.CreateRoute(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetRoute(ctx context.Context, id string) (*Route, error) {
	return s.repo.GetRouteByID(ctx, id)
}

func (s *service) ListRoutes(ctx context.Context, activeOnly bool) ([]*Route, error) {
	return s.repo.ListRoutes(ctx, activeOnly)
}

func (s *service) CreateClient(ctx context.Context, req CreateClientRequest) (*Client, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c := &Client{
		ID:       uuid.New(),
		Name:     req.Name,
		IsActive: true,
	}
	if req.RouteID != "" {
		rid, err := uuid.Parse(req.RouteID)
		if err != nil {
			return nil, fmt.Errorf("invalid route_id: %w", err)
		}
		if _, err := s.repo.GetRouteByID(ctx, req.RouteID); err != nil {
			return nil, fmt.Errorf("route not found: %w", err)
		}
		c.RouteID = &rid
	}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetClient(ctx context.Context, id string) (*Client, error) {
	return s.repo.GetClientByID(ctx, id)
}

func (s *service) ListClients(ctx context.Context, routeID string, activeOnly bool) ([]*Client, error) {
	return s.repo.ListClients(ctx, routeID, activeOnly)
}
