package bundle

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundlebuilder/backend/internal/domain/shared"
)

// BundleProduct attaches one storefront product to a bundle. Title,
// image and prices are snapshots taken at attach time; they are never
// updated afterwards, so a bundle keeps rendering even when the
// storefront product changes or disappears.
type BundleProduct struct {
	shared.BaseEntity
	BundleID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	CatalogProductID string           `gorm:"type:varchar(100);not null;index"`
	CatalogVariantID string           `gorm:"type:varchar(100);not null;default:''"`
	ProductTitle     string           `gorm:"type:varchar(255);not null"`
	ProductImage     string           `gorm:"type:text;not null;default:''"`
	Price            decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CompareAtPrice   *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for GORM
func (BundleProduct) TableName() string {
	return "bundle_products"
}

// NewBundleProduct creates an attachment snapshot for a storefront product
func NewBundleProduct(bundleID uuid.UUID, catalogProductID, catalogVariantID, productTitle, productImage string, price decimal.Decimal, compareAtPrice *decimal.Decimal) (*BundleProduct, error) {
	if catalogProductID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Storefront product ID is required")
	}
	if productTitle == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product title is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if compareAtPrice != nil && compareAtPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Compare-at price cannot be negative")
	}

	return &BundleProduct{
		BaseEntity:       shared.NewBaseEntity(),
		BundleID:         bundleID,
		CatalogProductID: catalogProductID,
		CatalogVariantID: catalogVariantID,
		ProductTitle:     productTitle,
		ProductImage:     productImage,
		Price:            price,
		CompareAtPrice:   compareAtPrice,
	}, nil
}
