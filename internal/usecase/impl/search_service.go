package impl

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	searchCachePrefix   = "search:"
	defaultSearchLimit  = 20
	maxSearchLimit      = 100
	defaultSearchRadius = 10.0 // km, when a geo query omits the radius

	// geoCandidateFactor over-fetches before the distance filter so a page
	// stays full after far-away storefronts drop out.
	geoCandidateFactor = 5
)

// searchService implements the SearchUsecase interface.
type searchService struct {
	vendorRepo  repository.VendorRepository
	productRepo repository.ProductRepository
	cache       service.Cache
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// SearchServiceParams holds dependencies for SearchService, injected by Fx.
type SearchServiceParams struct {
	fx.In

	VendorRepo  repository.VendorRepository
	ProductRepo repository.ProductRepository
	Cache       service.Cache
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSearchService is the constructor for searchService.
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	cacheTTL := time.Duration(0)
	if params.Config != nil && params.Config.Cache != nil {
		cacheTTL = params.Config.Cache.SearchTTL
	}

	return &searchService{
		vendorRepo:  params.VendorRepo,
		productRepo: params.ProductRepo,
		cache:       params.Cache,
		cacheTTL:    cacheTTL,
		logger:      params.Logger,
	}
}

func (srv *searchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SearchVendors finds storefronts, optionally filtered and ordered by
// straight-line distance from a point.
func (srv *searchService) SearchVendors(ctx context.Context, input *usecase.SearchVendorsInput) (*usecase.SearchVendorsOutput, error) {
	limit := clampLimit(input.Limit)

	cacheKey := searchCacheKey("vendors", input)
	if cached, found, err := srv.cache.Get(ctx, cacheKey); err == nil && found {
		var output usecase.SearchVendorsOutput
		if err := json.Unmarshal([]byte(cached), &output); err == nil {
			output.Cached = true

			return &output, nil
		}
	} else if err != nil {
		srv.log(ctx).Warn("Search cache read failed", slog.Any("error", err))
	}

	geoQuery := input.Latitude != nil && input.Longitude != nil

	query := &repository.VendorQuery{
		Text:     input.Query,
		Category: input.Category,
		City:     input.City,
		Limit:    limit,
		Offset:   input.Offset,
	}
	if geoQuery {
		query.Limit = limit * geoCandidateFactor
		query.Offset = 0
	}

	vendors, err := srv.vendorRepo.Search(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search vendors")
	}

	results := make([]*usecase.VendorResult, 0, len(vendors))
	if geoQuery {
		radius := input.RadiusKm
		if radius <= 0 {
			radius = defaultSearchRadius
		}
		origin := orb.Point{*input.Longitude, *input.Latitude}

		for _, vendor := range vendors {
			if vendor.Latitude == nil || vendor.Longitude == nil {
				continue
			}

			distanceKm := geo.DistanceHaversine(origin, orb.Point{*vendor.Longitude, *vendor.Latitude}) / 1000
			if distanceKm > radius {
				continue
			}

			d := distanceKm
			results = append(results, &usecase.VendorResult{Vendor: vendor, DistanceKm: &d})
		}

		sort.Slice(results, func(i, j int) bool {
			return *results[i].DistanceKm < *results[j].DistanceKm
		})

		if input.Offset > 0 && input.Offset < len(results) {
			results = results[input.Offset:]
		} else if input.Offset >= len(results) {
			results = nil
		}
		if len(results) > limit {
			results = results[:limit]
		}
	} else {
		for _, vendor := range vendors {
			results = append(results, &usecase.VendorResult{Vendor: vendor})
		}
	}

	output := &usecase.SearchVendorsOutput{Results: results}
	srv.cacheResult(ctx, cacheKey, output)

	return output, nil
}

// SearchProducts finds active products by text, category and price range.
func (srv *searchService) SearchProducts(ctx context.Context, input *usecase.SearchProductsInput) (*usecase.SearchProductsOutput, error) {
	cacheKey := searchCacheKey("products", input)
	if cached, found, err := srv.cache.Get(ctx, cacheKey); err == nil && found {
		var output usecase.SearchProductsOutput
		if err := json.Unmarshal([]byte(cached), &output); err == nil {
			output.Cached = true

			return &output, nil
		}
	} else if err != nil {
		srv.log(ctx).Warn("Search cache read failed", slog.Any("error", err))
	}

	products, err := srv.productRepo.Search(ctx, &repository.ProductQuery{
		Text:     input.Query,
		Category: input.Category,
		MinPrice: input.MinPrice,
		MaxPrice: input.MaxPrice,
		Limit:    clampLimit(input.Limit),
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	output := &usecase.SearchProductsOutput{Products: products}
	srv.cacheResult(ctx, cacheKey, output)

	return output, nil
}

func (srv *searchService) cacheResult(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := srv.cache.Set(ctx, key, string(encoded), srv.cacheTTL); err != nil {
		srv.log(ctx).Warn("Search cache write failed", slog.Any("error", err))
	}
}

// searchCacheKey hashes the full input so every distinct query gets its own
// cache slot without unbounded key length.
func searchCacheKey(kind string, input any) string {
	encoded, _ := json.Marshal(input)
	sum := sha256.Sum256(encoded)

	return fmt.Sprintf("%s%s:%s", searchCachePrefix, kind, hex.EncodeToString(sum[:16]))
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}

	return limit
}
