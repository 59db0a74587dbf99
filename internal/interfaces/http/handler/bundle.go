package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appbundle "github.com/bundlebuilder/backend/internal/application/bundle"
	"github.com/bundlebuilder/backend/internal/interfaces/http/dto"
	"github.com/bundlebuilder/backend/internal/interfaces/http/middleware"
)

// BundleHandler handles bundle management API endpoints
type BundleHandler struct {
	BaseHandler
	service       *appbundle.Service
	editorService *appbundle.EditorService
}

// NewBundleHandler creates a new BundleHandler
func NewBundleHandler(service *appbundle.Service, editorService *appbundle.EditorService) *BundleHandler {
	return &BundleHandler{
		service:       service,
		editorService: editorService,
	}
}

// createBundleRequest is the wire format for creating a bundle
type createBundleRequest struct {
	Title         string   `json:"title" binding:"required,max=200"`
	Description   string   `json:"description"`
	DiscountType  string   `json:"discount_type" binding:"omitempty,oneof=percentage fixed none"`
	DiscountValue *float64 `json:"discount_value" binding:"omitempty,gte=0"`
	MinProducts   *int     `json:"min_products" binding:"omitempty,gte=2"`
	MaxProducts   *int     `json:"max_products" binding:"omitempty,gte=2"`
}

// updateBundleRequest is the wire format for replacing a bundle's settings
type updateBundleRequest struct {
	Title         string  `json:"title" binding:"required,max=200"`
	Description   string  `json:"description"`
	DiscountType  string  `json:"discount_type" binding:"required,oneof=percentage fixed none"`
	DiscountValue float64 `json:"discount_value" binding:"gte=0"`
	MinProducts   int     `json:"min_products" binding:"required,gte=2"`
	MaxProducts   int     `json:"max_products" binding:"required,gte=2"`
	Status        string  `json:"status" binding:"required,oneof=draft active"`
}

// attachProductRequest is the wire format for attaching a catalog product
type attachProductRequest struct {
	CatalogProductID string   `json:"catalog_product_id" binding:"required"`
	CatalogVariantID string   `json:"catalog_variant_id" binding:"required"`
	ProductTitle     string   `json:"product_title" binding:"required"`
	ProductImage     string   `json:"product_image" binding:"omitempty,url"`
	Price            float64  `json:"price" binding:"gte=0"`
	CompareAtPrice   *float64 `json:"compare_at_price" binding:"omitempty,gte=0"`
}

// List returns all bundles owned by the tenant, newest first
func (h *BundleHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	bundles, err := h.service.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, bundles, int64(len(bundles)))
}

// Create creates a new bundle for the tenant
func (h *BundleHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req createBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := appbundle.CreateBundleRequest{
		Title:        req.Title,
		Description:  req.Description,
		DiscountType: req.DiscountType,
		MinProducts:  req.MinProducts,
		MaxProducts:  req.MaxProducts,
	}
	if req.DiscountValue != nil {
		v := decimal.NewFromFloat(*req.DiscountValue)
		appReq.DiscountValue = &v
	}

	result, err := h.service.Create(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Get returns a single bundle with its attached products
func (h *BundleHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	bundleID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), tenantID, bundleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update replaces the bundle's settings with the submitted values
func (h *BundleHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	bundleID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), tenantID, bundleID, appbundle.UpdateBundleRequest{
		Title:         req.Title,
		Description:   req.Description,
		DiscountType:  req.DiscountType,
		DiscountValue: decimal.NewFromFloat(req.DiscountValue),
		MinProducts:   req.MinProducts,
		MaxProducts:   req.MaxProducts,
		Status:        req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Editor returns the bundle together with its attachment candidates
// from the storefront catalog
func (h *BundleHandler) Editor(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	bundleID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.editorService.LoadEditor(c.Request.Context(), tenantID, bundleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, view)
}

// AttachProduct adds a catalog product snapshot to the bundle and
// returns the refreshed bundle
func (h *BundleHandler) AttachProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	bundleID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req attachProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	appReq := appbundle.AttachProductRequest{
		CatalogProductID: req.CatalogProductID,
		CatalogVariantID: req.CatalogVariantID,
		ProductTitle:     req.ProductTitle,
		ProductImage:     req.ProductImage,
		Price:            decimal.NewFromFloat(req.Price),
	}
	if req.CompareAtPrice != nil {
		v := decimal.NewFromFloat(*req.CompareAtPrice)
		appReq.CompareAtPrice = &v
	}

	result, err := h.service.AttachProduct(c.Request.Context(), tenantID, bundleID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// DetachProduct removes an attachment from the bundle and returns the
// refreshed bundle. Detaching an attachment that is already gone is
// not an error.
func (h *BundleHandler) DetachProduct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	bundleID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	attachmentID, ok := h.parseIDParam(c, "product_id")
	if !ok {
		return
	}

	result, err := h.service.DetachProduct(c.Request.Context(), tenantID, bundleID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// parseIDParam parses a UUID path parameter, responding with a
// validation error when it is malformed
func (h *BundleHandler) parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.ValidationError(c, []dto.ValidationDetail{
			{Field: name, Message: "Invalid UUID format"},
		})
		return uuid.Nil, false
	}
	return id, true
}
