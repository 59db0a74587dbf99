package bundle

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bundlebuilder/backend/internal/domain/bundle"
	"github.com/bundlebuilder/backend/internal/domain/shared"
)

// Service handles bundle business operations for the merchant admin
type Service struct {
	bundleRepo  bundle.Repository
	productRepo bundle.ProductRepository
}

// NewService creates a new bundle Service
func NewService(bundleRepo bundle.Repository, productRepo bundle.ProductRepository) *Service {
	return &Service{
		bundleRepo:  bundleRepo,
		productRepo: productRepo,
	}
}

// Create creates a new draft bundle. Omitted fields fall back to the
// defaults: percentage discount of zero, two to five products.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateBundleRequest) (*BundleResponse, error) {
	b, err := bundle.NewBundle(tenantID, req.Title)
	if err != nil {
		return nil, err
	}

	b.Description = req.Description

	discountType := bundle.DiscountTypePercentage
	if req.DiscountType != "" {
		discountType = bundle.DiscountType(req.DiscountType)
	}
	discountValue := decimal.Zero
	if req.DiscountValue != nil {
		discountValue = *req.DiscountValue
	}
	if err := b.SetDiscount(discountType, discountValue); err != nil {
		return nil, err
	}

	if req.MinProducts != nil || req.MaxProducts != nil {
		minProducts := b.MinProducts
		maxProducts := b.MaxProducts
		if req.MinProducts != nil {
			minProducts = *req.MinProducts
		}
		if req.MaxProducts != nil {
			maxProducts = *req.MaxProducts
		}
		if err := b.SetProductRange(minProducts, maxProducts); err != nil {
			return nil, err
		}
	}

	if err := s.bundleRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	return ToBundleResponse(b), nil
}

// GetByID loads a bundle with its attached products
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*BundleResponse, error) {
	b, err := s.bundleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return ToBundleResponse(b), nil
}

// List returns all of a tenant's bundles, newest first
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]BundleListItem, error) {
	bundles, err := s.bundleRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]BundleListItem, 0, len(bundles))
	for i := range bundles {
		items = append(items, ToBundleListItem(&bundles[i]))
	}
	return items, nil
}

// Update overwrites every editable field of a bundle
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateBundleRequest) (*BundleResponse, error) {
	b, err := s.bundleRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	err = b.Update(
		req.Title,
		req.Description,
		bundle.DiscountType(req.DiscountType),
		req.DiscountValue,
		req.MinProducts,
		req.MaxProducts,
		bundle.Status(req.Status),
	)
	if err != nil {
		return nil, err
	}

	if err := s.bundleRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	return ToBundleResponse(b), nil
}

// AttachProduct snapshots a storefront product into a bundle. A product
// can be attached at most once per bundle. Returns the refreshed bundle
// so the editor can re-render from a single response.
func (s *Service) AttachProduct(ctx context.Context, tenantID, bundleID uuid.UUID, req AttachProductRequest) (*BundleResponse, error) {
	b, err := s.bundleRepo.FindByIDForTenant(ctx, tenantID, bundleID)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsForProduct(ctx, b.ID, req.CatalogProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already part of this bundle")
	}

	attachment, err := bundle.NewBundleProduct(
		b.ID,
		req.CatalogProductID,
		req.CatalogVariantID,
		req.ProductTitle,
		req.ProductImage,
		req.Price,
		req.CompareAtPrice,
	)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, attachment); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, tenantID, bundleID)
}

// DetachProduct removes an attachment from a bundle. Detaching a
// product that is already gone succeeds, so stale editor tabs cannot
// fail on a second click. Returns the refreshed bundle.
func (s *Service) DetachProduct(ctx context.Context, tenantID, bundleID, attachmentID uuid.UUID) (*BundleResponse, error) {
	b, err := s.bundleRepo.FindByIDForTenant(ctx, tenantID, bundleID)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.DeleteFromBundle(ctx, b.ID, attachmentID); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, tenantID, bundleID)
}
