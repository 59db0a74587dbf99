package bundle

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for bundles
type Repository interface {
	// FindByIDForTenant loads a bundle with its attached products.
	// Returns shared.ErrNotFound when the bundle does not exist or
	// belongs to another tenant.
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bundle, error)

	// FindAllForTenant lists a tenant's bundles, newest first, with
	// attached products preloaded.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Bundle, error)

	// Save persists a new or updated bundle
	Save(ctx context.Context, b *Bundle) error

	// CountForTenant returns the number of bundles a tenant owns
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// ProductRepository defines the persistence contract for bundle attachments
type ProductRepository interface {
	// FindByBundle lists a bundle's attachments in attach order
	FindByBundle(ctx context.Context, bundleID uuid.UUID) ([]BundleProduct, error)

	// ExistsForProduct reports whether a storefront product is already
	// attached to the bundle.
	ExistsForProduct(ctx context.Context, bundleID uuid.UUID, catalogProductID string) (bool, error)

	// Save persists a new attachment
	Save(ctx context.Context, p *BundleProduct) error

	// DeleteFromBundle removes an attachment. Deleting an attachment
	// that does not exist, or that belongs to another bundle, is a
	// no-op so detach stays idempotent.
	DeleteFromBundle(ctx context.Context, bundleID, id uuid.UUID) error
}
