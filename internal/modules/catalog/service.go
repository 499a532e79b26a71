package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error)
	DeactivateProduct(ctx context.Context, id string) error
}

// CreateProductRequest holds the data for creating or updating a product.
type CreateProductRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	VariantLabel string   `json:"variant_label"`
	RegularPrice float64  `json:"regular_price"`
	SpecialPrice *float64 `json:"special_price,omitempty"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if req.RegularPrice < 0 {
		return nil, fmt.Errorf("regular_price must be >= 0")
	}
	p := &Product{
		ID:           uuid.New(),
		Name:         req.Name,
		Category:     req.Category,
		VariantLabel: req.VariantLabel,
		RegularPrice: req.RegularPrice,
		SpecialPrice: req.SpecialPrice,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	return s.repo.List(ctx, category, activeOnly)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req CreateProductRequest) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Category = req.Category
	p.VariantLabel = req.VariantLabel
	p.RegularPrice = req.RegularPrice
	p.SpecialPrice = req.SpecialPrice
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeactivateProduct(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}
