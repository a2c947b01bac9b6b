package postgres

import (
	"context"
	"time"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("invalid vendor or customer reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// UpdateStatus moves an order to a new fulfilment status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// CountByVendor returns the vendor's total order count, for entitlement checks.
func (repo *orderRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by vendor")
	}

	return count, nil
}

// TotalsForVendor aggregates order count and revenue for the vendor within
// [from, to). Cancelled orders are excluded from revenue reporting.
func (repo *orderRepository) TotalsForVendor(ctx context.Context, vendorID uuid.UUID, from, to time.Time) (*repository.VendorTotals, error) {
	var row struct {
		OrderCount   int64
		RevenuePaise *int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("vendor_id = ? AND created_at >= ? AND created_at < ? AND status <> ?",
			vendorID, from, to, string(entity.OrderCancelled)).
		Select("COUNT(*) AS order_count, SUM(amount_paise) AS revenue_paise").
		Scan(&row).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate vendor order totals")
	}

	totals := &repository.VendorTotals{OrderCount: row.OrderCount}
	if row.RevenuePaise != nil {
		totals.RevenuePaise = *row.RevenuePaise
	}

	return totals, nil
}

// DailyBuckets aggregates orders per UTC day for the vendor within [from, to).
func (repo *orderRepository) DailyBuckets(ctx context.Context, vendorID uuid.UUID, from, to time.Time) ([]*repository.DayBucket, error) {
	var rows []struct {
		Day          time.Time
		OrderCount   int64
		RevenuePaise int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("vendor_id = ? AND created_at >= ? AND created_at < ? AND status <> ?",
			vendorID, from, to, string(entity.OrderCancelled)).
		Select("DATE_TRUNC('day', created_at AT TIME ZONE 'UTC') AS day, COUNT(*) AS order_count, SUM(amount_paise) AS revenue_paise").
		Group("day").
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate daily order buckets")
	}

	buckets := make([]*repository.DayBucket, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, &repository.DayBucket{
			Day:          row.Day,
			OrderCount:   row.OrderCount,
			RevenuePaise: row.RevenuePaise,
		})
	}

	return buckets, nil
}

// toOrderDomain converts a persistence model to a domain entity.
func toOrderDomain(orderM *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:          orderM.ID,
		VendorID:    orderM.VendorID,
		CustomerID:  orderM.CustomerID,
		AmountPaise: orderM.AmountPaise,
		Status:      entity.OrderStatus(orderM.Status),
		CreatedAt:   orderM.CreatedAt,
		UpdatedAt:   orderM.UpdatedAt,
	}
}

// fromOrderDomain converts a domain entity to a persistence model.
func fromOrderDomain(order *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		ID:          order.ID,
		VendorID:    order.VendorID,
		CustomerID:  order.CustomerID,
		AmountPaise: order.AmountPaise,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
