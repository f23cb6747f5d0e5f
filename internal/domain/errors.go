package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidProduct indicates a product descriptor missing the fields
	// a cart line requires (non-empty id, non-negative price).
	ErrInvalidProduct = errors.New("invalid product")
	// ErrInvalidQuantity indicates a non-positive quantity where a
	// positive one is required.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
