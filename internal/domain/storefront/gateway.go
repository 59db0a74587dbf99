package storefront

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Gateway errors. Adapters wrap transport failures with these
// sentinels so callers can map them without knowing the platform.
var (
	ErrGatewayNotConfigured   = errors.New("storefront: catalog not configured for tenant")
	ErrGatewayUnavailable     = errors.New("storefront: catalog temporarily unavailable")
	ErrGatewayRequestFailed   = errors.New("storefront: catalog request failed")
	ErrGatewayInvalidResponse = errors.New("storefront: invalid catalog response")
)

// CandidatePageSize is the number of products fetched per editor load
const CandidatePageSize = 50

// CatalogGateway reads products from the remote storefront catalog.
// The gateway is read-only; attachments snapshot what it returns.
type CatalogGateway interface {
	// ListCandidates fetches up to CandidatePageSize products for the
	// tenant's storefront, in the catalog's own order.
	ListCandidates(ctx context.Context, tenantID uuid.UUID) ([]Candidate, error)
}
