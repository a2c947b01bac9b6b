package postgres

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// analyticsRepository implements the repository.AnalyticsRepository interface.
type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository is the constructor for analyticsRepository.
func NewAnalyticsRepository(db *gorm.DB) repository.AnalyticsRepository {
	return &analyticsRepository{
		db: db,
	}
}

// UpsertDay writes or replaces the rollup row for a (vendor, day) pair, so
// the daily job can be re-run for the same day without duplicating rows.
func (repo *analyticsRepository) UpsertDay(ctx context.Context, rollup *entity.AnalyticsRollup) error {
	rollupM := fromRollupDomain(rollup)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "vendor_id"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_count", "revenue_paise", "views", "updated_at",
			}),
		}).
		Create(rollupM).Error; err != nil {
		return errors.Wrap(err, "failed to upsert analytics rollup")
	}

	rollup.ID = rollupM.ID
	rollup.CreatedAt = rollupM.CreatedAt
	rollup.UpdatedAt = rollupM.UpdatedAt

	return nil
}

// ListRange returns the vendor's rollups with day in [from, to), oldest first.
func (repo *analyticsRepository) ListRange(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*entity.AnalyticsRollup, error) {
	var models []*model.AnalyticsRollupModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_id = ? AND day >= ? AND day < ?", vendorID, from, to).
		Order("day ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list analytics rollups")
	}

	rollups := make([]*entity.AnalyticsRollup, 0, len(models))
	for _, rollupM := range models {
		rollups = append(rollups, toRollupDomain(rollupM))
	}

	return rollups, nil
}

// ActiveVendorIDs returns the distinct vendors with at least one order in
// [from, to), so the rollup job only touches vendors with activity.
func (repo *analyticsRepository) ActiveVendorIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Distinct("vendor_id").
		Pluck("vendor_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active vendor IDs")
	}

	return ids, nil
}

// toRollupDomain converts a persistence model to a domain entity.
func toRollupDomain(rollupM *model.AnalyticsRollupModel) *entity.AnalyticsRollup {
	return &entity.AnalyticsRollup{
		ID:           rollupM.ID,
		VendorID:     rollupM.VendorID,
		Day:          rollupM.Day,
		OrderCount:   rollupM.OrderCount,
		RevenuePaise: rollupM.RevenuePaise,
		Views:        rollupM.Views,
		CreatedAt:    rollupM.CreatedAt,
		UpdatedAt:    rollupM.UpdatedAt,
	}
}

// fromRollupDomain converts a domain entity to a persistence model.
func fromRollupDomain(rollup *entity.AnalyticsRollup) *model.AnalyticsRollupModel {
	return &model.AnalyticsRollupModel{
		ID:           rollup.ID,
		VendorID:     rollup.VendorID,
		Day:          rollup.Day,
		OrderCount:   rollup.OrderCount,
		RevenuePaise: rollup.RevenuePaise,
		Views:        rollup.Views,
		CreatedAt:    rollup.CreatedAt,
		UpdatedAt:    rollup.UpdatedAt,
	}
}
