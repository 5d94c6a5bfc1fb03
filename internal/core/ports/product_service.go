package ports

import (
	"context"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
	Stock       int
}

// ListProductsResult is a page of products with pagination totals.
type ListProductsResult struct {
	Items      []*domain.Product
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProductService defines use-case operations for the product catalog.
type ProductService interface {
	List(ctx context.Context, filter ListProductsFilter) (*ListProductsResult, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
