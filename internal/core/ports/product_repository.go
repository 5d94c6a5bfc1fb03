package ports

import (
	"context"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ListProductsFilter carries query parameters for listing products.
type ListProductsFilter struct {
	Search string // optional: partial match on name
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
