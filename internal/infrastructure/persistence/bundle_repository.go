package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bundlebuilder/backend/internal/domain/bundle"
	"github.com/bundlebuilder/backend/internal/domain/shared"
)

// GormBundleRepository implements bundle.Repository using GORM
type GormBundleRepository struct {
	db *gorm.DB
}

// NewGormBundleRepository creates a new GormBundleRepository
func NewGormBundleRepository(db *gorm.DB) *GormBundleRepository {
	return &GormBundleRepository{db: db}
}

// FindByIDForTenant finds a bundle by ID within a tenant, with its
// attachments preloaded in attach order.
func (r *GormBundleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*bundle.Bundle, error) {
	var b bundle.Bundle
	if err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("bundle_products.created_at ASC")
		}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindAllForTenant lists a tenant's bundles, newest first
func (r *GormBundleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]bundle.Bundle, error) {
	var bundles []bundle.Bundle
	if err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("bundle_products.created_at ASC")
		}).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&bundles).Error; err != nil {
		return nil, err
	}
	return bundles, nil
}

// Save persists a new or updated bundle. Attachments are managed by
// their own repository, not through the association.
func (r *GormBundleRepository) Save(ctx context.Context, b *bundle.Bundle) error {
	return r.db.WithContext(ctx).
		Omit("Products").
		Save(b).Error
}

// CountForTenant returns the number of bundles a tenant owns
func (r *GormBundleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&bundle.Bundle{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
