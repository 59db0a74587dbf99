package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bundlebuilder/backend/internal/domain/bundle"
	"github.com/bundlebuilder/backend/internal/domain/shared"
)

// setupBundleTestDB creates an in-memory SQLite database for testing
func setupBundleTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE bundles (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			tenant_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			discount_type TEXT NOT NULL DEFAULT 'percentage',
			discount_value NUMERIC NOT NULL DEFAULT 0,
			min_products INTEGER NOT NULL DEFAULT 2,
			max_products INTEGER NOT NULL DEFAULT 5,
			status TEXT NOT NULL DEFAULT 'draft'
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE bundle_products (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			bundle_id TEXT NOT NULL,
			catalog_product_id TEXT NOT NULL,
			catalog_variant_id TEXT NOT NULL DEFAULT '',
			product_title TEXT NOT NULL,
			product_image TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			compare_at_price NUMERIC
		)
	`).Error
	require.NoError(t, err)

	return db
}

func mustNewBundle(t *testing.T, tenantID uuid.UUID, title string) *bundle.Bundle {
	t.Helper()
	b, err := bundle.NewBundle(tenantID, title)
	require.NoError(t, err)
	return b
}

func TestGormBundleRepository_SaveAndFind(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	b := mustNewBundle(t, tenantID, "Summer Pack")
	require.NoError(t, b.SetDiscount(bundle.DiscountTypeFixed, decimal.NewFromInt(15)))

	require.NoError(t, repo.Save(ctx, b))

	retrieved, err := repo.FindByIDForTenant(ctx, tenantID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, retrieved.ID)
	assert.Equal(t, "Summer Pack", retrieved.Title)
	assert.Equal(t, bundle.DiscountTypeFixed, retrieved.DiscountType)
	assert.True(t, retrieved.DiscountValue.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, bundle.StatusDraft, retrieved.Status)
	assert.Empty(t, retrieved.Products)
}

func TestGormBundleRepository_FindByIDForTenant_TenantIsolation(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	otherID := uuid.New()

	b := mustNewBundle(t, ownerID, "Private Pack")
	require.NoError(t, repo.Save(ctx, b))

	_, err := repo.FindByIDForTenant(ctx, otherID, b.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByIDForTenant(ctx, ownerID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormBundleRepository_FindByIDForTenant_PreloadsProductsInAttachOrder(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)
	productRepo := NewGormBundleProductRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	b := mustNewBundle(t, tenantID, "Combo")
	require.NoError(t, repo.Save(ctx, b))

	first, err := bundle.NewBundleProduct(b.ID, "gid://shopify/Product/1", "v1", "First", "", decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	second, err := bundle.NewBundleProduct(b.ID, "gid://shopify/Product/2", "v2", "Second", "", decimal.NewFromInt(20), nil)
	require.NoError(t, err)

	// Force distinct attach timestamps so ordering is deterministic
	first.CreatedAt = time.Now().Add(-time.Minute)
	second.CreatedAt = time.Now()

	require.NoError(t, productRepo.Save(ctx, second))
	require.NoError(t, productRepo.Save(ctx, first))

	retrieved, err := repo.FindByIDForTenant(ctx, tenantID, b.ID)
	require.NoError(t, err)
	require.Len(t, retrieved.Products, 2)
	assert.Equal(t, "First", retrieved.Products[0].ProductTitle)
	assert.Equal(t, "Second", retrieved.Products[1].ProductTitle)
}

func TestGormBundleRepository_FindAllForTenant(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	otherID := uuid.New()

	older := mustNewBundle(t, tenantID, "Older Pack")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := mustNewBundle(t, tenantID, "Newer Pack")
	foreign := mustNewBundle(t, otherID, "Foreign Pack")

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))
	require.NoError(t, repo.Save(ctx, foreign))

	bundles, err := repo.FindAllForTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, bundles, 2)
	assert.Equal(t, "Newer Pack", bundles[0].Title)
	assert.Equal(t, "Older Pack", bundles[1].Title)
}

func TestGormBundleRepository_FindAllForTenant_Empty(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)

	bundles, err := repo.FindAllForTenant(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, bundles)
}

func TestGormBundleRepository_Save_Update(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	b := mustNewBundle(t, tenantID, "Draft Pack")
	require.NoError(t, repo.Save(ctx, b))

	require.NoError(t, b.Update("Live Pack", "Ready to sell", bundle.DiscountTypePercentage, decimal.NewFromInt(10), 2, 5, bundle.StatusActive))
	require.NoError(t, repo.Save(ctx, b))

	retrieved, err := repo.FindByIDForTenant(ctx, tenantID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Live Pack", retrieved.Title)
	assert.Equal(t, bundle.StatusActive, retrieved.Status)
	assert.Equal(t, 2, retrieved.Version)
}

func TestGormBundleRepository_CountForTenant(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	require.NoError(t, repo.Save(ctx, mustNewBundle(t, tenantID, "One")))
	require.NoError(t, repo.Save(ctx, mustNewBundle(t, tenantID, "Two")))
	require.NoError(t, repo.Save(ctx, mustNewBundle(t, uuid.New(), "Foreign")))

	count, err := repo.CountForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormBundleProductRepository_ExistsForProduct(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleProductRepository(db)
	ctx := context.Background()

	bundleID := uuid.New()
	p, err := bundle.NewBundleProduct(bundleID, "gid://shopify/Product/1", "v1", "Widget", "", decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	exists, err := repo.ExistsForProduct(ctx, bundleID, "gid://shopify/Product/1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForProduct(ctx, bundleID, "gid://shopify/Product/2")
	require.NoError(t, err)
	assert.False(t, exists)

	// Same product attached to a different bundle does not count
	exists, err = repo.ExistsForProduct(ctx, uuid.New(), "gid://shopify/Product/1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormBundleProductRepository_DeleteFromBundle(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleProductRepository(db)
	ctx := context.Background()

	bundleID := uuid.New()
	p, err := bundle.NewBundleProduct(bundleID, "gid://shopify/Product/1", "v1", "Widget", "", decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	t.Run("deletes existing attachment", func(t *testing.T) {
		require.NoError(t, repo.DeleteFromBundle(ctx, bundleID, p.ID))

		products, err := repo.FindByBundle(ctx, bundleID)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("repeated delete is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.DeleteFromBundle(ctx, bundleID, p.ID))
	})

	t.Run("ignores attachments of other bundles", func(t *testing.T) {
		other, err := bundle.NewBundleProduct(uuid.New(), "gid://shopify/Product/9", "v9", "Gadget", "", decimal.NewFromInt(5), nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		require.NoError(t, repo.DeleteFromBundle(ctx, bundleID, other.ID))

		remaining, err := repo.FindByBundle(ctx, other.BundleID)
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}

func TestGormBundleProductRepository_FindByBundle_SnapshotRoundTrip(t *testing.T) {
	db := setupBundleTestDB(t)
	repo := NewGormBundleProductRepository(db)
	ctx := context.Background()

	bundleID := uuid.New()
	compareAt := decimal.NewFromFloat(24.99)
	p, err := bundle.NewBundleProduct(bundleID, "gid://shopify/Product/1", "gid://shopify/ProductVariant/11", "Widget", "https://cdn.example.com/widget.png", decimal.NewFromFloat(19.99), &compareAt)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	products, err := repo.FindByBundle(ctx, bundleID)
	require.NoError(t, err)
	require.Len(t, products, 1)

	got := products[0]
	assert.Equal(t, "gid://shopify/ProductVariant/11", got.CatalogVariantID)
	assert.Equal(t, "https://cdn.example.com/widget.png", got.ProductImage)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(19.99)))
	require.NotNil(t, got.CompareAtPrice)
	assert.True(t, got.CompareAtPrice.Equal(compareAt))
}
