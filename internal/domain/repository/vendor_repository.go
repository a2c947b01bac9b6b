package repository

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// VendorQuery narrows a storefront search before distance filtering is
// applied in memory. Zero values mean "no constraint".
type VendorQuery struct {
	Text     string
	Category string
	City     string
	Verified *bool
	Limit    int
	Offset   int
}

// VendorRepository reads vendor storefront profiles outside the account
// aggregate. Writes go through UserRepository.
type VendorRepository interface {
	// FindByUserID fetches the profile owned by the given account.
	// Returns ErrVendorNotFound when no record matches.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorProfile, error)

	// FindBySlug fetches a profile by its public storefront slug.
	// Returns ErrVendorNotFound when no record matches.
	FindBySlug(ctx context.Context, slug string) (*entity.VendorProfile, error)

	// Search returns profiles matching the query, name-ordered. Distance
	// filtering happens in the use case because radius math needs both ends.
	Search(ctx context.Context, query *VendorQuery) ([]*entity.VendorProfile, error)

	// UpdateProfile persists edits to mutable storefront fields.
	UpdateProfile(ctx context.Context, profile *entity.VendorProfile) error
}
