package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("product not found")
var ErrDuplicateName = errors.New("product name already exists")

// Symbolic failure codes surfaced to API callers.
const (
	CodeProductAlreadyExists     = "PRODUCT_ALREADY_EXISTS"
	CodeProductNameAlreadyExists = "PRODUCT_NAME_ALREADY_EXISTS"
	CodeProductNotFound          = "PRODUCT_NOT_FOUND"
)

// Product is the catalog aggregate. Name is unique across the catalog.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductError is a business-rule failure tagged with a symbolic code.
type ProductError struct {
	Code    string
	Message string
	kind    error
}

func (e *ProductError) Error() string { return e.Message }

// Unwrap exposes the sentinel so callers can use errors.Is(err, ErrNotFound).
func (e *ProductError) Unwrap() error { return e.kind }

// NewProductNotFound reports an unknown product id.
func NewProductNotFound(id string) *ProductError {
	return &ProductError{
		Code:    CodeProductNotFound,
		Message: fmt.Sprintf("product not found with id: %s", id),
		kind:    ErrNotFound,
	}
}

// NewProductAlreadyExists reports a name collision on create.
func NewProductAlreadyExists(name string) *ProductError {
	return &ProductError{
		Code:    CodeProductAlreadyExists,
		Message: fmt.Sprintf("a product named %q already exists", name),
		kind:    ErrDuplicateName,
	}
}

// NewProductNameTaken reports a name collision on rename.
func NewProductNameTaken(name string) *ProductError {
	return &ProductError{
		Code:    CodeProductNameAlreadyExists,
		Message: fmt.Sprintf("a product named %q already exists", name),
		kind:    ErrDuplicateName,
	}
}

// ValidationError is returned when a request is rejected at the boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
