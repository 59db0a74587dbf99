package storefront

import (
	"github.com/shopspring/decimal"
)

// graphqlRequest is the JSON body sent to the Admin API
type graphqlRequest struct {
	Query string `json:"query"`
}

// graphqlError is a single error entry in a GraphQL response
type graphqlError struct {
	Message string `json:"message"`
}

// productsResponse mirrors the products query result. Only the fields
// the editor needs are decoded.
type productsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node productNode `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type productNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage"`
	Variants struct {
		Edges []struct {
			Node variantNode `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

type variantNode struct {
	ID             string  `json:"id"`
	Price          string  `json:"price"`
	CompareAtPrice *string `json:"compareAtPrice"`
}

// parsePrice converts a Shopify money string to a decimal, treating
// empty and malformed values as zero.
func parsePrice(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
