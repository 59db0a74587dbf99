package bundle

import (
	"context"

	"github.com/google/uuid"

	"github.com/bundlebuilder/backend/internal/domain/bundle"
	"github.com/bundlebuilder/backend/internal/domain/storefront"
)

// EditorService assembles the bundle editor workflow: one bundle plus
// the page of storefront products the merchant can attach to it.
type EditorService struct {
	bundleRepo bundle.Repository
	gateway    storefront.CatalogGateway
}

// NewEditorService creates a new EditorService
func NewEditorService(bundleRepo bundle.Repository, gateway storefront.CatalogGateway) *EditorService {
	return &EditorService{
		bundleRepo: bundleRepo,
		gateway:    gateway,
	}
}

// LoadEditor loads a bundle together with its attachment candidates.
// Candidates already in the bundle are flagged rather than filtered
// out, so the editor can render them as added. A catalog failure fails
// the whole load; the editor is useless without its product picker.
func (s *EditorService) LoadEditor(ctx context.Context, tenantID, bundleID uuid.UUID) (*EditorViewResponse, error) {
	b, err := s.bundleRepo.FindByIDForTenant(ctx, tenantID, bundleID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.gateway.ListCandidates(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	view := &EditorViewResponse{
		Bundle:     *ToBundleResponse(b),
		Candidates: make([]CandidateResponse, 0, len(candidates)),
	}
	for _, c := range candidates {
		view.Candidates = append(view.Candidates, ToCandidateResponse(c, b.HasProduct(c.ProductID)))
	}
	return view, nil
}

// ListCandidates returns the catalog page on its own, outside the
// context of any bundle, so nothing is flagged as already added.
func (s *EditorService) ListCandidates(ctx context.Context, tenantID uuid.UUID) ([]CandidateResponse, error) {
	candidates, err := s.gateway.ListCandidates(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, ToCandidateResponse(c, false))
	}
	return result, nil
}
