package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"bazaar/config"
	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
	topProductCount      = 5

	analyticsCachePrefix = "analytics:"
)

// analyticsService implements the AnalyticsUsecase interface. Closed days
// are read from the rollup table; the current day is aggregated live so the
// dashboard never lags a full day behind.
type analyticsService struct {
	analyticsRepo  repository.AnalyticsRepository
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	subscriptionUC usecase.SubscriptionUsecase
	cache          service.Cache
	cacheTTL       time.Duration
	logger         *slog.Logger
}

// AnalyticsServiceParams holds dependencies for AnalyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	AnalyticsRepo  repository.AnalyticsRepository
	OrderRepo      repository.OrderRepository
	ProductRepo    repository.ProductRepository
	SubscriptionUC usecase.SubscriptionUsecase
	Cache          service.Cache
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	cacheTTL := time.Duration(0)
	if params.Config != nil && params.Config.Cache != nil {
		cacheTTL = params.Config.Cache.AnalyticsTTL
	}

	return &analyticsService{
		analyticsRepo:  params.AnalyticsRepo,
		orderRepo:      params.OrderRepo,
		productRepo:    params.ProductRepo,
		subscriptionUC: params.SubscriptionUC,
		cache:          params.Cache,
		cacheTTL:       cacheTTL,
		logger:         params.Logger,
	}
}

func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetDashboard builds the vendor's dashboard, serving from cache when fresh.
func (srv *analyticsService) GetDashboard(ctx context.Context, input *usecase.DashboardInput) (*usecase.DashboardOutput, error) {
	if !input.RequesterAdmin && input.RequesterID != input.VendorID {
		srv.log(ctx).Warn("Dashboard access denied",
			slog.Any("requesterID", input.RequesterID), slog.Any("vendorID", input.VendorID))

		return nil, domainerrors.ErrAuthorization.WithDetails("dashboards are visible to their owner and admins only")
	}

	// Admins can inspect any dashboard; vendors need a plan that includes
	// analytics.
	if !input.RequesterAdmin {
		if err := srv.subscriptionUC.CheckEntitlement(ctx, input.VendorID, usecase.FeatureAnalytics); err != nil {
			return nil, err
		}
	}

	days := input.Days
	if days <= 0 {
		days = defaultDashboardDays
	}
	if days > maxDashboardDays {
		days = maxDashboardDays
	}

	cacheKey := fmt.Sprintf("%s%s:%d", analyticsCachePrefix, input.VendorID, days)
	if cached, found, err := srv.cache.Get(ctx, cacheKey); err == nil && found {
		var output usecase.DashboardOutput
		if err := json.Unmarshal([]byte(cached), &output); err == nil {
			output.Cached = true

			return &output, nil
		}
	} else if err != nil {
		srv.log(ctx).Warn("Analytics cache read failed", slog.Any("error", err))
	}

	output, err := srv.buildDashboard(ctx, input.VendorID, days)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(output); err == nil {
		if err := srv.cache.Set(ctx, cacheKey, string(encoded), srv.cacheTTL); err != nil {
			srv.log(ctx).Warn("Analytics cache write failed", slog.Any("error", err))
		}
	}

	return output, nil
}

// buildDashboard stitches closed days from the rollup table together with a
// live aggregate for today.
func (srv *analyticsService) buildDashboard(ctx context.Context, vendorID uuid.UUID, days int) (*usecase.DashboardOutput, error) {
	today := startOfDayUTC(time.Now())
	from := today.AddDate(0, 0, -(days - 1))

	rollups, err := srv.analyticsRepo.ListRange(ctx, vendorID, from, today)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analytics rollups")
	}

	series := make([]usecase.SeriesPoint, 0, len(rollups)+1)
	var totalOrders, totalRevenue int64
	for _, rollup := range rollups {
		series = append(series, usecase.SeriesPoint{
			Day:          rollup.Day,
			OrderCount:   rollup.OrderCount,
			RevenuePaise: rollup.RevenuePaise,
		})
		totalOrders += rollup.OrderCount
		totalRevenue += rollup.RevenuePaise
	}

	liveTotals, err := srv.orderRepo.TotalsForVendor(ctx, vendorID, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate today's orders")
	}
	series = append(series, usecase.SeriesPoint{
		Day:          today,
		OrderCount:   liveTotals.OrderCount,
		RevenuePaise: liveTotals.RevenuePaise,
	})
	totalOrders += liveTotals.OrderCount
	totalRevenue += liveTotals.RevenuePaise

	top, err := srv.productRepo.TopByViews(ctx, vendorID, topProductCount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load top products")
	}

	topProducts := make([]usecase.TopProduct, 0, len(top))
	for _, product := range top {
		topProducts = append(topProducts, usecase.TopProduct{
			ProductID: product.ID,
			Name:      product.Name,
			Views:     product.Views,
		})
	}

	return &usecase.DashboardOutput{
		VendorID:     vendorID,
		From:         from,
		To:           today.AddDate(0, 0, 1),
		OrderCount:   totalOrders,
		RevenuePaise: totalRevenue,
		Series:       series,
		TopProducts:  topProducts,
	}, nil
}

// RollupDay aggregates every active vendor's orders for one calendar day.
func (srv *analyticsService) RollupDay(ctx context.Context, day time.Time) (int, error) {
	dayStart := startOfDayUTC(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	vendorIDs, err := srv.analyticsRepo.ActiveVendorIDs(ctx, dayStart, dayEnd)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list active vendors for rollup")
	}

	rolled := 0
	for _, vendorID := range vendorIDs {
		totals, err := srv.orderRepo.TotalsForVendor(ctx, vendorID, dayStart, dayEnd)
		if err != nil {
			srv.log(ctx).Error("Failed to aggregate vendor day",
				slog.Any("vendorID", vendorID), slog.Time("day", dayStart), slog.Any("error", err))

			continue
		}

		views, err := srv.productRepo.SumViews(ctx, vendorID)
		if err != nil {
			srv.log(ctx).Error("Failed to sum product views",
				slog.Any("vendorID", vendorID), slog.Any("error", err))

			continue
		}

		rollup := &entity.AnalyticsRollup{
			VendorID:     vendorID,
			Day:          dayStart,
			OrderCount:   totals.OrderCount,
			RevenuePaise: totals.RevenuePaise,
			Views:        views,
		}
		if err := srv.analyticsRepo.UpsertDay(ctx, rollup); err != nil {
			srv.log(ctx).Error("Failed to upsert rollup",
				slog.Any("vendorID", vendorID), slog.Time("day", dayStart), slog.Any("error", err))

			continue
		}

		// Stale dashboard entries must not outlive the rollup that
		// supersedes them.
		if err := srv.cache.DeleteByPrefix(ctx, analyticsCachePrefix+vendorID.String()); err != nil {
			srv.log(ctx).Warn("Failed to invalidate analytics cache", slog.Any("vendorID", vendorID), slog.Any("error", err))
		}

		rolled++
	}

	srv.log(ctx).Info("Daily rollup finished", slog.Time("day", dayStart), slog.Int("vendors", rolled))

	return rolled, nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
