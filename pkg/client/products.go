package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ValenCardozo/expert-pancake/internal/core/domain"
)

// ProductInput is the create/update payload for a catalog entry.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Stock       int     `json:"stock"`
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Items      []*domain.Product `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ListOptions narrows a listing request. Zero values mean server defaults.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

func (o ListOptions) encode() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/v1/products"+opts.encode(), true, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(id), true, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/v1/products", true, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/v1/products/%s", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPut, path, true, in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/products/"+url.PathEscape(id), true, nil, nil)
}
