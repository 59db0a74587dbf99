package bundle

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundlebuilder/backend/internal/domain/shared"
)

// DiscountType describes how a bundle discount is applied
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypeNone       DiscountType = "none"
)

// IsValid checks whether the discount type is one of the known values
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountTypePercentage, DiscountTypeFixed, DiscountTypeNone:
		return true
	}
	return false
}

// Status represents the bundle lifecycle state
type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
)

// IsValid checks whether the status is one of the known values
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusActive
}

const (
	maxTitleLength = 200

	defaultMinProducts = 2
	defaultMaxProducts = 5
)

// Bundle is a merchant-defined grouping of storefront products sold
// together at a discount. It is the aggregate root; attached products
// live and die with it.
type Bundle struct {
	shared.TenantAggregateRoot
	Title         string          `gorm:"type:varchar(200);not null"`
	Description   string          `gorm:"type:text;not null;default:''"`
	DiscountType  DiscountType    `gorm:"type:varchar(20);not null;default:'percentage'"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinProducts   int             `gorm:"not null;default:2"`
	MaxProducts   int             `gorm:"not null;default:5"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'draft'"`
	Products      []BundleProduct `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Bundle) TableName() string {
	return "bundles"
}

// NewBundle creates a draft bundle with the default discount and size
// configuration. Only the title is required.
func NewBundle(tenantID uuid.UUID, title string) (*Bundle, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	return &Bundle{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               strings.TrimSpace(title),
		Description:         "",
		DiscountType:        DiscountTypePercentage,
		DiscountValue:       decimal.Zero,
		MinProducts:         defaultMinProducts,
		MaxProducts:         defaultMaxProducts,
		Status:              StatusDraft,
	}, nil
}

// Update overwrites every editable field at once. The editor always
// submits the full form, so partial updates are not supported.
func (b *Bundle) Update(title, description string, discountType DiscountType, discountValue decimal.Decimal, minProducts, maxProducts int, status Status) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateDiscount(discountType, discountValue); err != nil {
		return err
	}
	if err := validateProductRange(minProducts, maxProducts); err != nil {
		return err
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown bundle status: %s", status))
	}

	b.Title = strings.TrimSpace(title)
	b.Description = description
	b.DiscountType = discountType
	b.DiscountValue = discountValue
	b.MinProducts = minProducts
	b.MaxProducts = maxProducts
	b.Status = status
	b.IncrementVersion()
	return nil
}

// SetDiscount changes the discount configuration
func (b *Bundle) SetDiscount(discountType DiscountType, value decimal.Decimal) error {
	if err := validateDiscount(discountType, value); err != nil {
		return err
	}
	b.DiscountType = discountType
	b.DiscountValue = value
	return nil
}

// SetProductRange changes the allowed number of products in the bundle
func (b *Bundle) SetProductRange(minProducts, maxProducts int) error {
	if err := validateProductRange(minProducts, maxProducts); err != nil {
		return err
	}
	b.MinProducts = minProducts
	b.MaxProducts = maxProducts
	return nil
}

// IsActive returns true when the bundle is visible to shoppers
func (b *Bundle) IsActive() bool {
	return b.Status == StatusActive
}

// HasProduct reports whether a storefront product is already attached.
// Products must be preloaded for this to be meaningful.
func (b *Bundle) HasProduct(catalogProductID string) bool {
	for i := range b.Products {
		if b.Products[i].CatalogProductID == catalogProductID {
			return true
		}
	}
	return false
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_TITLE", "Bundle title cannot be empty")
	}
	if len(trimmed) > maxTitleLength {
		return shared.NewDomainError("INVALID_TITLE", fmt.Sprintf("Bundle title cannot exceed %d characters", maxTitleLength))
	}
	return nil
}

func validateDiscount(discountType DiscountType, value decimal.Decimal) error {
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT", fmt.Sprintf("Unknown discount type: %s", discountType))
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount value cannot be negative")
	}
	if discountType == DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount cannot exceed 100")
	}
	return nil
}

func validateProductRange(minProducts, maxProducts int) error {
	if minProducts < defaultMinProducts {
		return shared.NewDomainError("INVALID_PRODUCT_RANGE", fmt.Sprintf("A bundle needs at least %d products", defaultMinProducts))
	}
	if maxProducts < minProducts {
		return shared.NewDomainError("INVALID_PRODUCT_RANGE", "Maximum products cannot be lower than minimum products")
	}
	return nil
}
