package catalog

import (
	"github.com/relooped/reloop-backend/pkg/db/models"
)

// unknownSeller is the join fallback when the seller row is missing; a broken
// reference must never crash a read path.
const unknownSeller = "Unknown"

// ProductView is a product joined with its seller's username.
type ProductView struct {
	models.Product
	SellerUsername string `json:"seller_username"`
}

// Filters describe the supported knobs for the browse endpoint.
type Filters struct {
	// Category filters by exact match; empty or "All" disables the filter.
	Category string
	// Search is a case-insensitive substring match against title, description
	// or any stored tag.
	Search string
	// MinSustainabilityScore drops listings scoring below the threshold.
	MinSustainabilityScore *int
}
