package bundle

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlebuilder/backend/internal/domain/shared"
)

func TestNewBundle(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates draft bundle with defaults", func(t *testing.T) {
		b, err := NewBundle(tenantID, "Summer Pack")
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.Equal(t, tenantID, b.TenantID)
		assert.Equal(t, "Summer Pack", b.Title)
		assert.Empty(t, b.Description)
		assert.Equal(t, DiscountTypePercentage, b.DiscountType)
		assert.True(t, b.DiscountValue.IsZero())
		assert.Equal(t, 2, b.MinProducts)
		assert.Equal(t, 5, b.MaxProducts)
		assert.Equal(t, StatusDraft, b.Status)
		assert.False(t, b.IsActive())
		assert.NotEmpty(t, b.ID)
		assert.Equal(t, 1, b.Version)
	})

	t.Run("trims surrounding whitespace from title", func(t *testing.T) {
		b, err := NewBundle(tenantID, "  Winter Pack  ")
		require.NoError(t, err)
		assert.Equal(t, "Winter Pack", b.Title)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewBundle(tenantID, "   ")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TITLE", domainErr.Code)
	})

	t.Run("fails with overlong title", func(t *testing.T) {
		_, err := NewBundle(tenantID, strings.Repeat("x", 201))
		require.Error(t, err)
	})
}

func TestBundle_Update(t *testing.T) {
	tenantID := uuid.New()

	newBundle := func(t *testing.T) *Bundle {
		b, err := NewBundle(tenantID, "Starter Pack")
		require.NoError(t, err)
		return b
	}

	t.Run("overwrites all editable fields", func(t *testing.T) {
		b := newBundle(t)

		err := b.Update("Pro Pack", "Three for the price of two", DiscountTypeFixed, decimal.NewFromInt(15), 3, 6, StatusActive)
		require.NoError(t, err)

		assert.Equal(t, "Pro Pack", b.Title)
		assert.Equal(t, "Three for the price of two", b.Description)
		assert.Equal(t, DiscountTypeFixed, b.DiscountType)
		assert.True(t, b.DiscountValue.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, 3, b.MinProducts)
		assert.Equal(t, 6, b.MaxProducts)
		assert.Equal(t, StatusActive, b.Status)
		assert.True(t, b.IsActive())
		assert.Equal(t, 2, b.Version)
	})

	t.Run("clears description when submitted empty", func(t *testing.T) {
		b := newBundle(t)
		require.NoError(t, b.Update("Pro Pack", "old text", DiscountTypePercentage, decimal.NewFromInt(10), 2, 5, StatusDraft))
		require.NoError(t, b.Update("Pro Pack", "", DiscountTypePercentage, decimal.NewFromInt(10), 2, 5, StatusDraft))
		assert.Empty(t, b.Description)
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountType("bogo"), decimal.Zero, 2, 5, StatusDraft)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DISCOUNT", domainErr.Code)
	})

	t.Run("rejects negative discount value", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountTypeFixed, decimal.NewFromInt(-5), 2, 5, StatusDraft)
		require.Error(t, err)
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountTypePercentage, decimal.NewFromInt(101), 2, 5, StatusDraft)
		require.Error(t, err)
	})

	t.Run("allows fixed discount above 100", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountTypeFixed, decimal.NewFromInt(250), 2, 5, StatusDraft)
		require.NoError(t, err)
	})

	t.Run("rejects minimum below two", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountTypePercentage, decimal.Zero, 1, 5, StatusDraft)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PRODUCT_RANGE", domainErr.Code)
	})

	t.Run("rejects maximum below minimum", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountTypePercentage, decimal.Zero, 4, 3, StatusDraft)
		require.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("Pro Pack", "", DiscountTypePercentage, decimal.Zero, 2, 5, Status("archived"))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("leaves fields untouched on validation failure", func(t *testing.T) {
		b := newBundle(t)
		err := b.Update("", "changed", DiscountTypeFixed, decimal.NewFromInt(5), 3, 6, StatusActive)
		require.Error(t, err)

		assert.Equal(t, "Starter Pack", b.Title)
		assert.Empty(t, b.Description)
		assert.Equal(t, StatusDraft, b.Status)
		assert.Equal(t, 1, b.Version)
	})
}

func TestBundle_HasProduct(t *testing.T) {
	tenantID := uuid.New()

	b, err := NewBundle(tenantID, "Starter Pack")
	require.NoError(t, err)

	attachment, err := NewBundleProduct(b.ID, "gid://shopify/Product/1", "gid://shopify/ProductVariant/11", "Widget", "", decimal.NewFromInt(10), nil)
	require.NoError(t, err)
	b.Products = append(b.Products, *attachment)

	assert.True(t, b.HasProduct("gid://shopify/Product/1"))
	assert.False(t, b.HasProduct("gid://shopify/Product/2"))
}

func TestDiscountType_IsValid(t *testing.T) {
	assert.True(t, DiscountTypePercentage.IsValid())
	assert.True(t, DiscountTypeFixed.IsValid())
	assert.True(t, DiscountTypeNone.IsValid())
	assert.False(t, DiscountType("").IsValid())
	assert.False(t, DiscountType("coupon").IsValid())
}
