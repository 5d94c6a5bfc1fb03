package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidProduct = errors.New("invalid product")

// Product is the inventory item managed through the admin API.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks the business rules a product must satisfy before being
// persisted. Returns ErrInvalidProduct wrapped with the failing rule.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.Join(ErrInvalidProduct, errors.New("name is required"))
	}
	if p.Price <= 0 {
		return errors.Join(ErrInvalidProduct, errors.New("price must be positive"))
	}
	if p.Stock < 0 {
		return errors.Join(ErrInvalidProduct, errors.New("stock cannot be negative"))
	}
	return nil
}
