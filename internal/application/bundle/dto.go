package bundle

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundlebuilder/backend/internal/domain/bundle"
	"github.com/bundlebuilder/backend/internal/domain/storefront"
)

// CreateBundleRequest represents a request to create a new bundle.
// Everything except the title falls back to the draft defaults.
type CreateBundleRequest struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	DiscountType  string           `json:"discount_type"`
	DiscountValue *decimal.Decimal `json:"discount_value"`
	MinProducts   *int             `json:"min_products"`
	MaxProducts   *int             `json:"max_products"`
}

// UpdateBundleRequest represents a full overwrite of a bundle's
// editable fields. The editor always submits the complete form.
type UpdateBundleRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinProducts   int             `json:"min_products"`
	MaxProducts   int             `json:"max_products"`
	Status        string          `json:"status"`
}

// AttachProductRequest carries the storefront snapshot for a product
// being attached to a bundle.
type AttachProductRequest struct {
	CatalogProductID string           `json:"catalog_product_id"`
	CatalogVariantID string           `json:"catalog_variant_id"`
	ProductTitle     string           `json:"product_title"`
	ProductImage     string           `json:"product_image"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compare_at_price"`
}

// BundleProductResponse represents an attached product in API responses
type BundleProductResponse struct {
	ID               uuid.UUID        `json:"id"`
	CatalogProductID string           `json:"catalog_product_id"`
	CatalogVariantID string           `json:"catalog_variant_id"`
	ProductTitle     string           `json:"product_title"`
	ProductImage     string           `json:"product_image"`
	Price            decimal.Decimal  `json:"price"`
	CompareAtPrice   *decimal.Decimal `json:"compare_at_price"`
	CreatedAt        time.Time        `json:"created_at"`
}

// BundleResponse represents a bundle with its attachments in API responses
type BundleResponse struct {
	ID            uuid.UUID               `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	DiscountType  string                  `json:"discount_type"`
	DiscountValue decimal.Decimal         `json:"discount_value"`
	MinProducts   int                     `json:"min_products"`
	MaxProducts   int                     `json:"max_products"`
	Status        string                  `json:"status"`
	Products      []BundleProductResponse `json:"products"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
	Version       int                     `json:"version"`
}

// BundleListItem represents a bundle row in list responses
type BundleListItem struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	MinProducts   int             `json:"min_products"`
	MaxProducts   int             `json:"max_products"`
	Status        string          `json:"status"`
	ProductCount  int             `json:"product_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CandidateResponse represents a storefront product offered in the editor
type CandidateResponse struct {
	ProductID      string           `json:"product_id"`
	Title          string           `json:"title"`
	ImageURL       string           `json:"image_url"`
	VariantID      string           `json:"variant_id"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Attachable     bool             `json:"attachable"`
	AlreadyAdded   bool             `json:"already_added"`
}

// EditorViewResponse is the combined payload the bundle editor renders
// from: the bundle itself plus the attachable catalog page.
type EditorViewResponse struct {
	Bundle     BundleResponse      `json:"bundle"`
	Candidates []CandidateResponse `json:"candidates"`
}

// ToBundleResponse converts a domain bundle to its response representation
func ToBundleResponse(b *bundle.Bundle) *BundleResponse {
	products := make([]BundleProductResponse, 0, len(b.Products))
	for i := range b.Products {
		products = append(products, ToBundleProductResponse(&b.Products[i]))
	}

	return &BundleResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		DiscountType:  string(b.DiscountType),
		DiscountValue: b.DiscountValue,
		MinProducts:   b.MinProducts,
		MaxProducts:   b.MaxProducts,
		Status:        string(b.Status),
		Products:      products,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Version:       b.Version,
	}
}

// ToBundleProductResponse converts a domain attachment to its response representation
func ToBundleProductResponse(p *bundle.BundleProduct) BundleProductResponse {
	return BundleProductResponse{
		ID:               p.ID,
		CatalogProductID: p.CatalogProductID,
		CatalogVariantID: p.CatalogVariantID,
		ProductTitle:     p.ProductTitle,
		ProductImage:     p.ProductImage,
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		CreatedAt:        p.CreatedAt,
	}
}

// ToBundleListItem converts a domain bundle to its list representation
func ToBundleListItem(b *bundle.Bundle) BundleListItem {
	return BundleListItem{
		ID:            b.ID,
		Title:         b.Title,
		DiscountType:  string(b.DiscountType),
		DiscountValue: b.DiscountValue,
		MinProducts:   b.MinProducts,
		MaxProducts:   b.MaxProducts,
		Status:        string(b.Status),
		ProductCount:  len(b.Products),
		CreatedAt:     b.CreatedAt,
	}
}

// ToCandidateResponse converts a catalog candidate, flagging products
// the bundle already contains.
func ToCandidateResponse(c storefront.Candidate, alreadyAdded bool) CandidateResponse {
	return CandidateResponse{
		ProductID:      c.ProductID,
		Title:          c.Title,
		ImageURL:       c.ImageURL,
		VariantID:      c.VariantID,
		Price:          c.Price,
		CompareAtPrice: c.CompareAtPrice,
		Attachable:     c.Attachable(),
		AlreadyAdded:   alreadyAdded,
	}
}
