package postgres

import (
	"context"
	"encoding/json"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// registrationRepository implements the repository.RegistrationRepository interface.
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository is the constructor for registrationRepository.
func NewRegistrationRepository(db *gorm.DB) repository.RegistrationRepository {
	return &registrationRepository{
		db: db,
	}
}

// Create persists a new registration request. The partial unique index on
// email rejects a second open or approved application for the same address.
func (repo *registrationRepository) Create(ctx context.Context, req *entity.VendorRegistrationRequest) error {
	reqM, err := fromRegistrationDomain(req)
	if err != nil {
		return errors.Wrap(err, "failed to map registration request")
	}

	if err := repo.db.WithContext(ctx).Create(reqM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRegistration
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required registration information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create registration request")
	}

	// Update the entity with generated values
	req.ID = reqM.ID
	req.CreatedAt = reqM.CreatedAt
	req.UpdatedAt = reqM.UpdatedAt

	return nil
}

// FindByID retrieves a registration request by its unique ID.
func (repo *registrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.VendorRegistrationRequest, error) {
	var reqM model.VendorRegistrationRequestModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reqM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegistrationNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration request by ID")
	}

	return toRegistrationDomain(&reqM)
}

// FindActiveByEmail retrieves the open or approved request for an email,
// skipping rejected ones so re-applications resolve to the newest attempt.
func (repo *registrationRepository) FindActiveByEmail(ctx context.Context, email string) (*entity.VendorRegistrationRequest, error) {
	var reqM model.VendorRegistrationRequestModel

	if err := repo.db.WithContext(ctx).
		Where("email = ? AND status <> ?", email, string(entity.RegistrationRejected)).
		Order("created_at DESC").
		First(&reqM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRegistrationNotFound
		}

		return nil, errors.Wrap(err, "failed to find registration request by email")
	}

	return toRegistrationDomain(&reqM)
}

// List returns a page of registration requests, newest first, optionally
// filtered by status, together with the total count for the filter.
func (repo *registrationRepository) List(ctx context.Context, status entity.RegistrationStatus, limit, offset int) ([]*entity.VendorRegistrationRequest, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.VendorRegistrationRequestModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count registration requests")
	}

	var models []*model.VendorRegistrationRequestModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list registration requests")
	}

	requests := make([]*entity.VendorRegistrationRequest, 0, len(models))
	for _, reqM := range models {
		req, err := toRegistrationDomain(reqM)
		if err != nil {
			return nil, 0, errors.Wrap(err, "failed to map registration request")
		}
		requests = append(requests, req)
	}

	return requests, total, nil
}

// MarkReviewed records a review decision, guarded on the request still being
// pending so two concurrent reviewers cannot both win.
func (repo *registrationRepository) MarkReviewed(ctx context.Context, id uuid.UUID, review *entity.ReviewDecision) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorRegistrationRequestModel{}).
		Where("id = ? AND status = ?", id, string(entity.RegistrationPending)).
		Updates(map[string]any{
			"status":        string(review.Status),
			"reviewer_id":   review.ReviewerID,
			"reviewed_at":   review.ReviewedAt,
			"reject_reason": review.RejectReason,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to mark registration request reviewed")
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing request from one another reviewer got to first.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.VendorRegistrationRequestModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check registration request existence")
		}
		if count == 0 {
			return repository.ErrRegistrationNotFound
		}

		return repository.ErrRegistrationNotPending
	}

	return nil
}

// toRegistrationDomain converts a persistence model to a domain entity.
func toRegistrationDomain(reqM *model.VendorRegistrationRequestModel) (*entity.VendorRegistrationRequest, error) {
	var addOns []string
	if len(reqM.AddOns) > 0 {
		if err := json.Unmarshal(reqM.AddOns, &addOns); err != nil {
			return nil, errors.Wrap(err, "failed to decode add-ons")
		}
	}

	return &entity.VendorRegistrationRequest{
		ID:               reqM.ID,
		FullName:         reqM.FullName,
		Email:            reqM.Email,
		Phone:            reqM.Phone,
		PasswordHash:     reqM.PasswordHash,
		CompanyName:      reqM.CompanyName,
		BusinessType:     reqM.BusinessType,
		Category:         reqM.Category,
		YearsInBusiness:  reqM.YearsInBusiness,
		EmployeeCount:    reqM.EmployeeCount,
		AddressLine1:     reqM.AddressLine1,
		AddressLine2:     reqM.AddressLine2,
		City:             reqM.City,
		State:            reqM.State,
		PostalCode:       reqM.PostalCode,
		Latitude:         reqM.Latitude,
		Longitude:        reqM.Longitude,
		DeliveryRadiusKm: reqM.DeliveryRadiusKm,
		GSTNumber:        reqM.GSTNumber,
		GSTVerified:      reqM.GSTVerified,
		GSTDetails:       reqM.GSTDetails,
		CertificateURL:   reqM.CertificateURL,
		LogoURL:          reqM.LogoURL,
		BannerURL:        reqM.BannerURL,
		Tagline:          reqM.Tagline,
		SelectedPackage:  entity.PlanTier(reqM.SelectedPackage),
		BillingCycle:     reqM.BillingCycle,
		AddOns:           addOns,
		TermsAccepted:    reqM.TermsAccepted,
		PrivacyAccepted:  reqM.PrivacyAccepted,
		Status:           entity.RegistrationStatus(reqM.Status),
		ReviewerID:       reqM.ReviewerID,
		ReviewedAt:       reqM.ReviewedAt,
		RejectReason:     reqM.RejectReason,
		CreatedAt:        reqM.CreatedAt,
		UpdatedAt:        reqM.UpdatedAt,
	}, nil
}

// fromRegistrationDomain converts a domain entity to a persistence model.
func fromRegistrationDomain(req *entity.VendorRegistrationRequest) (*model.VendorRegistrationRequestModel, error) {
	var addOns []byte
	if len(req.AddOns) > 0 {
		encoded, err := json.Marshal(req.AddOns)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode add-ons")
		}
		addOns = encoded
	}

	return &model.VendorRegistrationRequestModel{
		ID:               req.ID,
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		PasswordHash:     req.PasswordHash,
		CompanyName:      req.CompanyName,
		BusinessType:     req.BusinessType,
		Category:         req.Category,
		YearsInBusiness:  req.YearsInBusiness,
		EmployeeCount:    req.EmployeeCount,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		City:             req.City,
		State:            req.State,
		PostalCode:       req.PostalCode,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		DeliveryRadiusKm: req.DeliveryRadiusKm,
		GSTNumber:        req.GSTNumber,
		GSTVerified:      req.GSTVerified,
		GSTDetails:       req.GSTDetails,
		CertificateURL:   req.CertificateURL,
		LogoURL:          req.LogoURL,
		BannerURL:        req.BannerURL,
		Tagline:          req.Tagline,
		SelectedPackage:  string(req.SelectedPackage),
		BillingCycle:     req.BillingCycle,
		AddOns:           addOns,
		TermsAccepted:    req.TermsAccepted,
		PrivacyAccepted:  req.PrivacyAccepted,
		Status:           string(req.Status),
		ReviewerID:       req.ReviewerID,
		ReviewedAt:       req.ReviewedAt,
		RejectReason:     req.RejectReason,
		CreatedAt:        req.CreatedAt,
		UpdatedAt:        req.UpdatedAt,
	}, nil
}
