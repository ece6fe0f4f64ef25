package entities

import (
	"time"

	"novamarket/pkg/errors"
)

// Product is the single domain entity of the marketplace. The identifier is
// an opaque string assigned by the store on insert and immutable afterwards.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Image       string     `json:"image"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ProductUpdate describes a partial update of a product. Nil fields are
// left untouched by the store.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *string
}

// Validate checks the domain invariants that must hold for every product
// regardless of how it entered the system.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.NewValidationError("product name must not be empty")
	}
	if len(p.Name) > 100 {
		return errors.NewValidationError("product name must be at most 100 characters")
	}
	if p.Description == "" {
		return errors.NewValidationError("product description must not be empty")
	}
	if len(p.Description) > 1000 {
		return errors.NewValidationError("product description must be at most 1000 characters")
	}
	if p.Price <= 0 {
		return errors.NewValidationError("price must be a positive number")
	}
	if p.Image == "" {
		return errors.NewValidationError("product image must not be empty")
	}
	return nil
}

// IsValidID reports whether s has the shape of a store-assigned product
// identifier (24 hexadecimal characters). The store owns assignment; this
// only rejects identifiers that can never exist.
func IsValidID(s string) bool {
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
