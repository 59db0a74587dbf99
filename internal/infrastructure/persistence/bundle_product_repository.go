package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundlebuilder/backend/internal/domain/bundle"
)

// GormBundleProductRepository implements bundle.ProductRepository using GORM
type GormBundleProductRepository struct {
	db *gorm.DB
}

// NewGormBundleProductRepository creates a new GormBundleProductRepository
func NewGormBundleProductRepository(db *gorm.DB) *GormBundleProductRepository {
	return &GormBundleProductRepository{db: db}
}

// FindByBundle lists a bundle's attachments in attach order
func (r *GormBundleProductRepository) FindByBundle(ctx context.Context, bundleID uuid.UUID) ([]bundle.BundleProduct, error) {
	var products []bundle.BundleProduct
	if err := r.db.WithContext(ctx).
		Where("bundle_id = ?", bundleID).
		Order("created_at ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ExistsForProduct reports whether a storefront product is already
// attached to the bundle.
func (r *GormBundleProductRepository) ExistsForProduct(ctx context.Context, bundleID uuid.UUID, catalogProductID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&bundle.BundleProduct{}).
		Where("bundle_id = ? AND catalog_product_id = ?", bundleID, catalogProductID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a new attachment
func (r *GormBundleProductRepository) Save(ctx context.Context, p *bundle.BundleProduct) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// DeleteFromBundle removes an attachment scoped to its bundle. Missing
// rows are not an error, so a repeated detach stays a no-op.
func (r *GormBundleProductRepository) DeleteFromBundle(ctx context.Context, bundleID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("bundle_id = ? AND id = ?", bundleID, id).
		Delete(&bundle.BundleProduct{}).Error
}
