package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// --- Input DTOs ---

// SearchVendorsInput filters the public storefront directory. When both
// coordinates are set, results outside RadiusKm of the point are dropped
// and the rest are ordered nearest first.
type SearchVendorsInput struct {
	Query    string
	Category string
	City     string
	Latitude *float64
	Longitude *float64
	RadiusKm float64
	Limit    int
	Offset   int
}

// SearchProductsInput filters the public catalog. Price bounds are in paise.
type SearchProductsInput struct {
	Query    string
	Category string
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}

// --- Output DTOs ---

// VendorResult is one storefront hit. DistanceKm is only set on geo queries.
type VendorResult struct {
	Vendor     *entity.VendorProfile
	DistanceKm *float64
}

// SearchVendorsOutput is one page of storefront results.
type SearchVendorsOutput struct {
	Results []*VendorResult
	Cached  bool
}

// SearchProductsOutput is one page of catalog results.
type SearchProductsOutput struct {
	Products []*entity.Product
	Cached   bool
}

// SearchUsecase defines the interface for public marketplace search.
type SearchUsecase interface {
	// SearchVendors finds storefronts by text, category, city and optional
	// distance from a point. Results are briefly cached per query.
	SearchVendors(ctx context.Context, input *SearchVendorsInput) (*SearchVendorsOutput, error)

	// SearchProducts finds active products by text, category and price range.
	SearchProducts(ctx context.Context, input *SearchProductsInput) (*SearchProductsOutput, error)
}
