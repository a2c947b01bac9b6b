package usecase

import (
	"context"
	"io"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateVendorProfileInput carries self-service storefront edits. Nil
// pointers leave the current value untouched.
type UpdateVendorProfileInput struct {
	UserID           uuid.UUID
	StoreName        *string
	Tagline          *string
	AddressLine1     *string
	AddressLine2     *string
	City             *string
	State            *string
	PostalCode       *string
	Latitude         *float64
	Longitude        *float64
	DeliveryRadiusKm *float64
}

// UploadAssetInput carries one storefront asset upload.
type UploadAssetInput struct {
	UserID      uuid.UUID
	Kind        string // "logo" or "banner"
	Filename    string
	ContentType string
	Content     io.Reader
}

// VendorUsecase defines the interface for public storefront reads and
// vendor self-service profile management.
type VendorUsecase interface {
	// GetStorefront fetches the public profile behind a storefront slug.
	GetStorefront(ctx context.Context, slug string) (*entity.VendorProfile, error)

	// GetStorefrontQR renders a PNG QR code linking to the storefront.
	GetStorefrontQR(ctx context.Context, slug string) ([]byte, error)

	// UpdateProfile applies self-service edits to the caller's storefront.
	UpdateProfile(ctx context.Context, input *UpdateVendorProfileInput) (*entity.VendorProfile, error)

	// UploadAsset stores a logo or banner image and records its URL on the
	// caller's profile.
	UploadAsset(ctx context.Context, input *UploadAssetInput) (url string, err error)
}
