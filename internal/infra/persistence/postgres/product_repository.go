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

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create persists a new product listing.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("invalid vendor reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidation.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// Update persists changes to an existing product.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "vendor_id", "views", "created_at").
		Updates(productM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Search returns active products matching the query filters.
func (repo *productRepository) Search(ctx context.Context, query *repository.ProductQuery) ([]*entity.Product, error) {
	stmt := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("active = ?", true)

	if query.Text != "" {
		pattern := "%" + query.Text + "%"
		stmt = stmt.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if query.Category != "" {
		stmt = stmt.Where("category = ?", query.Category)
	}
	if query.VendorID != nil {
		stmt = stmt.Where("vendor_id = ?", *query.VendorID)
	}
	if query.MinPrice > 0 {
		stmt = stmt.Where("price_paise >= ?", query.MinPrice)
	}
	if query.MaxPrice > 0 {
		stmt = stmt.Where("price_paise <= ?", query.MaxPrice)
	}

	var models []*model.ProductModel
	if err := stmt.
		Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	products := make([]*entity.Product, 0, len(models))
	for _, productM := range models {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// CountByVendor returns the number of listings a vendor owns, for
// entitlement checks.
func (repo *productRepository) CountByVendor(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products by vendor")
	}

	return count, nil
}

// TopByViews returns the vendor's most viewed products.
func (repo *productRepository) TopByViews(ctx context.Context, vendorID uuid.UUID, limit int) ([]*entity.Product, error) {
	var models []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("views DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list top products by views")
	}

	products := make([]*entity.Product, 0, len(models))
	for _, productM := range models {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// SumViews returns the total view count across all of a vendor's products.
func (repo *productRepository) SumViews(ctx context.Context, vendorID uuid.UUID) (int64, error) {
	var total *int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("vendor_id = ?", vendorID).
		Select("SUM(views)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum product views")
	}

	if total == nil {
		return 0, nil
	}

	return *total, nil
}

// IncrementViews bumps a product's view counter atomically.
func (repo *productRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment product views")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// toProductDomain converts a persistence model to a domain entity.
func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:          productM.ID,
		VendorID:    productM.VendorID,
		Name:        productM.Name,
		Description: productM.Description,
		Category:    productM.Category,
		PricePaise:  productM.PricePaise,
		Active:      productM.Active,
		Views:       productM.Views,
		CreatedAt:   productM.CreatedAt,
		UpdatedAt:   productM.UpdatedAt,
	}
}

// fromProductDomain converts a domain entity to a persistence model.
func fromProductDomain(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:          product.ID,
		VendorID:    product.VendorID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		PricePaise:  product.PricePaise,
		Active:      product.Active,
		Views:       product.Views,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
