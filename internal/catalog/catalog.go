package catalog

import "context"

// Product categories carried by the storefront
const (
	CategoryLaptop    = "laptop"
	CategoryPhone     = "phone"
	CategoryAudio     = "audio"
	CategoryAccessory = "accessory"
)

// ValidCategory reports whether the given value is a known category
func ValidCategory(category string) bool {
	switch category {
	case CategoryLaptop, CategoryPhone, CategoryAudio, CategoryAccessory:
		return true
	}
	return false
}

// Sort orders supported by product search
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// Product is a read-only projection of a catalog row. Description and
// Specs participate in keyword matching but are not returned to clients.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	ImageURL    string  `json:"image_url"`
	Description string  `json:"description,omitempty"`
	Specs       string  `json:"specs,omitempty"`
}

// Query describes one catalog lookup. Keywords are OR-combined with each
// other and across the searchable text fields; the remaining filters are
// AND-combined.
type Query struct {
	Keywords []string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Limit    int
}

// PriceStats holds the aggregate facts for one category filter
type PriceStats struct {
	MinPrice   float64
	MaxPrice   float64
	TotalCount int64
}

// Catalog is the read-only product store consulted by the tool executors.
// Implementations translate these calls into the underlying query engine;
// they never mutate catalog entries.
type Catalog interface {
	// Search returns products matching the query, capped at Query.Limit
	Search(ctx context.Context, query Query) ([]Product, error)

	// PriceStats computes min price, max price and row count, optionally
	// restricted to one category. All three facts apply the same filter.
	PriceStats(ctx context.Context, category string) (*PriceStats, error)

	// ByIDs fetches products by identifier membership, in catalog order
	ByIDs(ctx context.Context, ids []string) ([]Product, error)
}
