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

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create persists a new subscription. The unique index on vendor_id enforces
// the single-subscription-per-vendor rule.
func (repo *subscriptionRepository) Create(ctx context.Context, sub *entity.VendorSubscription) error {
	subM := fromSubscriptionDomain(sub)

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSubscription
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("invalid vendor reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required subscription information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	// Update the entity with generated values
	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt
	sub.UpdatedAt = subM.UpdatedAt

	return nil
}

// FindByVendorID retrieves the subscription owned by the given vendor.
func (repo *subscriptionRepository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) (*entity.VendorSubscription, error) {
	var subM model.VendorSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		First(&subM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find subscription by vendor ID")
	}

	return toSubscriptionDomain(&subM), nil
}

// Update persists the full subscription state in place.
func (repo *subscriptionRepository) Update(ctx context.Context, sub *entity.VendorSubscription) error {
	subM := fromSubscriptionDomain(sub)

	result := repo.db.WithContext(ctx).
		Model(&model.VendorSubscriptionModel{}).
		Where("id = ?", sub.ID).
		Select("*").
		Omit("id", "vendor_id", "created_at").
		Updates(subM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update subscription")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSubscriptionNotFound
	}

	return nil
}

// ListLapsed returns subscriptions whose EndDate has passed but whose status
// still claims access, for the expiry sweep to resolve.
func (repo *subscriptionRepository) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*entity.VendorSubscription, error) {
	var models []*model.VendorSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("end_date <= ? AND status IN ?", now, []string{
			string(entity.SubscriptionTrial),
			string(entity.SubscriptionActive),
			string(entity.SubscriptionCancelled),
			string(entity.SubscriptionGracePeriod),
		}).
		Order("end_date ASC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list lapsed subscriptions")
	}

	subs := make([]*entity.VendorSubscription, 0, len(models))
	for _, subM := range models {
		subs = append(subs, toSubscriptionDomain(subM))
	}

	return subs, nil
}

// toSubscriptionDomain converts a persistence model to a domain entity.
func toSubscriptionDomain(subM *model.VendorSubscriptionModel) *entity.VendorSubscription {
	return &entity.VendorSubscription{
		ID:          subM.ID,
		VendorID:    subM.VendorID,
		PlanTier:    entity.PlanTier(subM.PlanTier),
		Status:      entity.SubscriptionStatus(subM.Status),
		IsTrial:     subM.IsTrial,
		StartDate:   subM.StartDate,
		EndDate:     subM.EndDate,
		TrialEndsAt: subM.TrialEndsAt,
		AutoRenew:   subM.AutoRenew,
		Entitlements: entity.Entitlements{
			MaxProducts:     subM.MaxProducts,
			MaxOrders:       subM.MaxOrders,
			StorageLimitMB:  subM.StorageLimitMB,
			AnalyticsAccess: subM.AnalyticsAccess,
			PrioritySupport: subM.PrioritySupport,
		},
		AmountPaise:   subM.AmountPaise,
		Currency:      subM.Currency,
		BillingCycle:  subM.BillingCycle,
		LastOrderID:   subM.LastOrderID,
		LastPaymentID: subM.LastPaymentID,
		CreatedAt:     subM.CreatedAt,
		UpdatedAt:     subM.UpdatedAt,
	}
}

// fromSubscriptionDomain converts a domain entity to a persistence model.
func fromSubscriptionDomain(sub *entity.VendorSubscription) *model.VendorSubscriptionModel {
	return &model.VendorSubscriptionModel{
		ID:              sub.ID,
		VendorID:        sub.VendorID,
		PlanTier:        string(sub.PlanTier),
		Status:          string(sub.Status),
		IsTrial:         sub.IsTrial,
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		TrialEndsAt:     sub.TrialEndsAt,
		AutoRenew:       sub.AutoRenew,
		MaxProducts:     sub.Entitlements.MaxProducts,
		MaxOrders:       sub.Entitlements.MaxOrders,
		StorageLimitMB:  sub.Entitlements.StorageLimitMB,
		AnalyticsAccess: sub.Entitlements.AnalyticsAccess,
		PrioritySupport: sub.Entitlements.PrioritySupport,
		AmountPaise:     sub.AmountPaise,
		Currency:        sub.Currency,
		BillingCycle:    sub.BillingCycle,
		LastOrderID:     sub.LastOrderID,
		LastPaymentID:   sub.LastPaymentID,
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}
}
