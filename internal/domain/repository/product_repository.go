package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound indicates no product matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// ProductQuery narrows a catalog search. Zero values mean "no constraint";
// price bounds are in paise.
type ProductQuery struct {
	Text     string
	Category string
	VendorID *uuid.UUID
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}

// ProductRepository manages the vendor catalog.
type ProductRepository interface {
	// Create stores a new product.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID fetches a single product.
	// Returns ErrProductNotFound when no record matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Update persists product edits.
	Update(ctx context.Context, product *entity.Product) error

	// Search returns active products matching the query, newest first.
	Search(ctx context.Context, query *ProductQuery) ([]*entity.Product, error)

	// CountByVendor returns how many products the vendor has, for
	// entitlement checks.
	CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error)

	// TopByViews returns the vendor's most viewed products.
	TopByViews(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entity.Product, error)

	// SumViews returns the total view count across the vendor's products.
	SumViews(ctx context.Context, vendorID uuid.UUID) (int64, error)

	// IncrementViews bumps the view counter for a product.
	IncrementViews(ctx context.Context, id uuid.UUID) error
}
