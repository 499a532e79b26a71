package catalog

import "context"

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
	Deactivate(ctx context.Context, id string) error
}
