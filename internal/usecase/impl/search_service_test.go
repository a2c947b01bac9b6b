package impl

import (
	"context"
	"testing"
	"time"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSearchServiceFixture() (usecase.SearchUsecase, *mockVendorRepo, *mockProductRepo) {
	vendorRepo := new(mockVendorRepo)
	productRepo := new(mockProductRepo)

	svc := NewSearchService(SearchServiceParams{
		VendorRepo:  vendorRepo,
		ProductRepo: productRepo,
		Cache:       passthroughCache{},
		Config:      &config.Config{Cache: &config.CacheConfig{SearchTTL: 5 * time.Minute}},
		Logger:      testLogger(),
	})

	return svc, vendorRepo, productRepo
}

func vendorAt(slug string, lat, lng float64) *entity.VendorProfile {
	return &entity.VendorProfile{Slug: slug, StoreName: slug, Latitude: &lat, Longitude: &lng}
}

func TestSearchService_SearchVendors_GeoFilterAndOrder(t *testing.T) {
	svc, vendorRepo, _ := newSearchServiceFixture()
	ctx := context.Background()

	// Pune city center and three storefronts at roughly 1 km, 7 km and 60 km.
	queryLat, queryLng := 18.5204, 73.8567
	near := vendorAt("near", 18.5290, 73.8570)
	mid := vendorAt("mid", 18.5800, 73.8900)
	far := vendorAt("far", 19.0760, 72.8777) // Mumbai
	noCoords := &entity.VendorProfile{Slug: "no-coords"}

	vendorRepo.On("Search", ctx, mock.Anything).
		Return([]*entity.VendorProfile{far, noCoords, mid, near}, nil)

	output, err := svc.SearchVendors(ctx, &usecase.SearchVendorsInput{
		Latitude:  &queryLat,
		Longitude: &queryLng,
		RadiusKm:  10,
	})
	require.NoError(t, err)

	// Far-away and coordinate-less storefronts drop; the rest order nearest first.
	require.Len(t, output.Results, 2)
	assert.Equal(t, "near", output.Results[0].Vendor.Slug)
	assert.Equal(t, "mid", output.Results[1].Vendor.Slug)

	require.NotNil(t, output.Results[0].DistanceKm)
	assert.InDelta(t, 1.0, *output.Results[0].DistanceKm, 0.5)
	assert.Less(t, *output.Results[0].DistanceKm, *output.Results[1].DistanceKm)
}

func TestSearchService_SearchVendors_NoGeoKeepsRepoOrder(t *testing.T) {
	svc, vendorRepo, _ := newSearchServiceFixture()
	ctx := context.Background()

	vendorRepo.On("Search", ctx, mock.MatchedBy(func(q *repository.VendorQuery) bool {
		return q.Text == "spice" && q.Limit == defaultSearchLimit
	})).Return([]*entity.VendorProfile{{Slug: "a"}, {Slug: "b"}}, nil)

	output, err := svc.SearchVendors(ctx, &usecase.SearchVendorsInput{Query: "spice"})
	require.NoError(t, err)
	require.Len(t, output.Results, 2)
	assert.Equal(t, "a", output.Results[0].Vendor.Slug)
	assert.Nil(t, output.Results[0].DistanceKm)
}

func TestSearchService_SearchProducts(t *testing.T) {
	svc, _, productRepo := newSearchServiceFixture()
	ctx := context.Background()

	productRepo.On("Search", ctx, mock.MatchedBy(func(q *repository.ProductQuery) bool {
		return q.Category == "grocery" && q.MinPrice == 10000 && q.MaxPrice == 50000
	})).Return([]*entity.Product{{Name: "Basmati Rice 5kg", PricePaise: 45000}}, nil)

	output, err := svc.SearchProducts(ctx, &usecase.SearchProductsInput{
		Category: "grocery",
		MinPrice: 10000,
		MaxPrice: 50000,
	})
	require.NoError(t, err)
	require.Len(t, output.Products, 1)
	assert.Equal(t, "Basmati Rice 5kg", output.Products[0].Name)
}
