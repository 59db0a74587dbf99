package storefront

import (
	"github.com/shopspring/decimal"
)

// Candidate is a storefront product offered for attachment in the
// bundle editor. It is ephemeral: fetched on demand from the remote
// catalog and never persisted.
type Candidate struct {
	ProductID      string
	Title          string
	ImageURL       string
	VariantID      string
	Price          decimal.Decimal
	CompareAtPrice *decimal.Decimal
}

// Attachable reports whether the candidate carries a priced variant.
// Products without variants are still listed in the editor but cannot
// be attached.
func (c Candidate) Attachable() bool {
	return c.VariantID != ""
}
