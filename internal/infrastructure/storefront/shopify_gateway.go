package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bundlebuilder/backend/internal/domain/storefront"
)

// maxResponseSize is the maximum allowed response size from the Admin API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// productsQuery fetches one page of products with their first variant.
// The editor only renders the lead variant's price, so deeper variant
// pagination is not requested.
const productsQuery = `{
  products(first: %d) {
    edges {
      node {
        id
        title
        featuredImage {
          url
        }
        variants(first: 1) {
          edges {
            node {
              id
              price
              compareAtPrice
            }
          }
        }
      }
    }
  }
}`

// ShopifyGateway implements storefront.CatalogGateway against the
// Shopify Admin GraphQL API.
type ShopifyGateway struct {
	config     *ShopifyConfig
	httpClient *http.Client

	// tenantConfigs stores per-tenant shop credentials. In production
	// these would be loaded from the merchant's installation record.
	tenantConfigs map[uuid.UUID]*ShopifyConfig
	mu            sync.RWMutex
}

// NewShopifyGateway creates a new gateway. A nil config is allowed;
// tenants then must register their own credentials before use.
func NewShopifyGateway(config *ShopifyConfig) (*ShopifyGateway, error) {
	timeout := 30
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
		timeout = config.TimeoutSeconds
	}

	return &ShopifyGateway{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		tenantConfigs: make(map[uuid.UUID]*ShopifyConfig),
	}, nil
}

// SetTenantConfig registers the shop credentials for a tenant
func (g *ShopifyGateway) SetTenantConfig(tenantID uuid.UUID, config *ShopifyConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tenantConfigs[tenantID] = config
	return nil
}

// getTenantConfig retrieves the credentials for a tenant, falling back
// to the default config.
func (g *ShopifyGateway) getTenantConfig(tenantID uuid.UUID) (*ShopifyConfig, error) {
	g.mu.RLock()
	config, ok := g.tenantConfigs[tenantID]
	g.mu.RUnlock()
	if ok {
		return config, nil
	}
	if g.config != nil {
		return g.config, nil
	}
	return nil, storefront.ErrGatewayNotConfigured
}

// ListCandidates fetches one page of products from the tenant's shop
func (g *ShopifyGateway) ListCandidates(ctx context.Context, tenantID uuid.UUID) ([]storefront.Candidate, error) {
	config, err := g.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(productsQuery, storefront.CandidatePageSize)
	body, err := g.doRequest(ctx, config, query)
	if err != nil {
		return nil, err
	}

	var resp productsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", storefront.ErrGatewayInvalidResponse, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", storefront.ErrGatewayRequestFailed, resp.Errors[0].Message)
	}

	candidates := make([]storefront.Candidate, 0, len(resp.Data.Products.Edges))
	for _, edge := range resp.Data.Products.Edges {
		candidates = append(candidates, convertProductNode(edge.Node))
	}
	return candidates, nil
}

// convertProductNode maps a product node to a catalog candidate. A
// product without variants still yields a candidate so the editor can
// show it, just without price data.
func convertProductNode(node productNode) storefront.Candidate {
	candidate := storefront.Candidate{
		ProductID: node.ID,
		Title:     node.Title,
	}
	if node.FeaturedImage != nil {
		candidate.ImageURL = node.FeaturedImage.URL
	}

	if len(node.Variants.Edges) > 0 {
		variant := node.Variants.Edges[0].Node
		candidate.VariantID = variant.ID
		candidate.Price = parsePrice(variant.Price)
		if variant.CompareAtPrice != nil && *variant.CompareAtPrice != "" {
			compareAt := parsePrice(*variant.CompareAtPrice)
			candidate.CompareAtPrice = &compareAt
		}
	}
	return candidate
}

func (g *ShopifyGateway) doRequest(ctx context.Context, config *ShopifyConfig, query string) ([]byte, error) {
	payload, err := json.Marshal(graphqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", config.GraphQLEndpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", config.AccessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", storefront.ErrGatewayRequestFailed, resp.StatusCode)
	}

	return body, nil
}

// Interface guard
var _ storefront.CatalogGateway = (*ShopifyGateway)(nil)
