package handler

import (
	"github.com/gin-gonic/gin"

	appbundle "github.com/bundlebuilder/backend/internal/application/bundle"
)

// CatalogHandler exposes the read-only storefront catalog
type CatalogHandler struct {
	BaseHandler
	editorService *appbundle.EditorService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(editorService *appbundle.EditorService) *CatalogHandler {
	return &CatalogHandler{
		editorService: editorService,
	}
}

// ListCandidates returns the first page of storefront products the
// tenant can attach to a bundle
func (h *CatalogHandler) ListCandidates(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	candidates, err := h.editorService.ListCandidates(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, candidates, int64(len(candidates)))
}
