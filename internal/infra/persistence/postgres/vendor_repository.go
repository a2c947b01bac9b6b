package postgres

import (
	"context"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// vendorRepository implements the repository.VendorRepository interface.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{
		db: db,
	}
}

// FindByUserID retrieves the vendor profile owned by the given user.
func (repo *vendorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VendorProfile, error) {
	var profileM model.VendorProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor profile by user ID")
	}

	return toVendorProfileDomain(&profileM), nil
}

// FindBySlug retrieves the vendor profile behind a public storefront slug.
func (repo *vendorRepository) FindBySlug(ctx context.Context, slug string) (*entity.VendorProfile, error) {
	var profileM model.VendorProfileModel

	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor profile by slug")
	}

	return toVendorProfileDomain(&profileM), nil
}

// Search returns vendor profiles matching the query filters, most recently
// created first. Geo filtering happens in the use case layer on top of this.
func (repo *vendorRepository) Search(ctx context.Context, query *repository.VendorQuery) ([]*entity.VendorProfile, error) {
	stmt := repo.db.WithContext(ctx).Model(&model.VendorProfileModel{})

	if query.Text != "" {
		pattern := "%" + query.Text + "%"
		stmt = stmt.Where("store_name ILIKE ? OR tagline ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}
	if query.Category != "" {
		stmt = stmt.Where("category = ?", query.Category)
	}
	if query.City != "" {
		stmt = stmt.Where("city ILIKE ?", query.City)
	}
	if query.Verified != nil {
		stmt = stmt.Where("is_verified = ?", *query.Verified)
	}

	var models []*model.VendorProfileModel
	if err := stmt.
		Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search vendor profiles")
	}

	profiles := make([]*entity.VendorProfile, 0, len(models))
	for _, profileM := range models {
		profiles = append(profiles, toVendorProfileDomain(profileM))
	}

	return profiles, nil
}

// UpdateProfile persists changes to an existing vendor profile.
func (repo *vendorRepository) UpdateProfile(ctx context.Context, profile *entity.VendorProfile) error {
	profileM := fromVendorProfileDomain(profile)

	result := repo.db.WithContext(ctx).
		Model(&model.VendorProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Select("*").
		Omit("user_id", "created_at").
		Updates(profileM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("storefront slug already in use")
		}

		return errors.Wrap(result.Error, "failed to update vendor profile")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// toVendorProfileDomain converts a persistence model to a domain entity.
func toVendorProfileDomain(profileM *model.VendorProfileModel) *entity.VendorProfile {
	return &entity.VendorProfile{
		UserID:           profileM.UserID,
		StoreName:        profileM.StoreName,
		Slug:             profileM.Slug,
		Tagline:          profileM.Tagline,
		Description:      profileM.Description,
		Category:         profileM.Category,
		AddressLine1:     profileM.AddressLine1,
		AddressLine2:     profileM.AddressLine2,
		City:             profileM.City,
		State:            profileM.State,
		PostalCode:       profileM.PostalCode,
		Latitude:         profileM.Latitude,
		Longitude:        profileM.Longitude,
		DeliveryRadiusKm: profileM.DeliveryRadiusKm,
		LogoURL:          profileM.LogoURL,
		BannerURL:        profileM.BannerURL,
		BusinessLicense:  profileM.BusinessLicense,
		IsVerified:       profileM.IsVerified,
		CreatedAt:        profileM.CreatedAt,
		UpdatedAt:        profileM.UpdatedAt,
	}
}

// fromVendorProfileDomain converts a domain entity to a persistence model.
func fromVendorProfileDomain(profile *entity.VendorProfile) *model.VendorProfileModel {
	return &model.VendorProfileModel{
		UserID:           profile.UserID,
		StoreName:        profile.StoreName,
		Slug:             profile.Slug,
		Tagline:          profile.Tagline,
		Description:      profile.Description,
		Category:         profile.Category,
		AddressLine1:     profile.AddressLine1,
		AddressLine2:     profile.AddressLine2,
		City:             profile.City,
		State:            profile.State,
		PostalCode:       profile.PostalCode,
		Latitude:         profile.Latitude,
		Longitude:        profile.Longitude,
		DeliveryRadiusKm: profile.DeliveryRadiusKm,
		LogoURL:          profile.LogoURL,
		BannerURL:        profile.BannerURL,
		BusinessLicense:  profile.BusinessLicense,
		IsVerified:       profile.IsVerified,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
}
