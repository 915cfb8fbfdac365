package tools

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"shop-agent/internal/catalog"
	"shop-agent/internal/logger"
	"shop-agent/internal/search"
)

// maxSearchResults caps every search response regardless of how many rows match
const maxSearchResults = 5

// ProductsResult is the payload returned to the model by search_products
// and show_products. A catalog failure sets Error and leaves Products
// empty; a genuine zero-result search has no Error.
type ProductsResult struct {
	Products []catalog.Product `json:"products"`
	Error    string            `json:"error,omitempty"`
}

// PriceRangeResult is the payload returned by get_price_range. Category
// echoes the applied filter, or "all" when none was given.
type PriceRangeResult struct {
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
	TotalCount int64   `json:"total_count"`
	Category   string  `json:"category"`
	Error      string  `json:"error,omitempty"`
}

// Executor runs the agent's tool palette against the product catalog.
// Failures never escape as Go errors: they are folded into the result
// payload so the model can recover in-conversation.
type Executor struct {
	catalog catalog.Catalog
}

// NewExecutor creates an Executor over the given catalog
func NewExecutor(cat catalog.Catalog) *Executor {
	return &Executor{catalog: cat}
}

// SearchProducts executes the search_products tool
func (e *Executor) SearchProducts(ctx context.Context, args SearchArgs) *ProductsResult {
	query := catalog.Query{Limit: maxSearchResults}

	if raw := search.Sanitize(args.Query); raw != "" {
		expanded := search.Expand(raw)
		query.Keywords = strings.Fields(strings.ToLower(expanded))
	}
	if catalog.ValidCategory(args.Category) {
		query.Category = args.Category
	}
	if brand := search.Sanitize(args.Brand); brand != "" {
		query.Brand = brand
	}
	if args.MinPrice != nil {
		lower := float64(*args.MinPrice)
		query.MinPrice = &lower
	}
	if args.MaxPrice != nil {
		upper := float64(*args.MaxPrice)
		query.MaxPrice = &upper
	}
	if args.Sort == catalog.SortPriceAsc || args.Sort == catalog.SortPriceDesc {
		query.Sort = args.Sort
	}

	products, err := e.catalog.Search(ctx, query)
	if err != nil {
		logger.Log.WithError(err).Error("Product search failed")
		return &ProductsResult{Products: []catalog.Product{}, Error: "product search failed"}
	}
	if products == nil {
		products = []catalog.Product{}
	}
	if len(products) > maxSearchResults {
		products = products[:maxSearchResults]
	}

	logger.Log.WithFields(logrus.Fields{
		"keywords": len(query.Keywords),
		"results":  len(products),
	}).Debug("search_products executed")

	return &ProductsResult{Products: products}
}

// GetPriceRange executes the get_price_range tool
func (e *Executor) GetPriceRange(ctx context.Context, args PriceRangeArgs) *PriceRangeResult {
	category := ""
	if catalog.ValidCategory(args.Category) {
		category = args.Category
	}

	echo := category
	if echo == "" {
		echo = "all"
	}

	stats, err := e.catalog.PriceStats(ctx, category)
	if err != nil {
		logger.Log.WithError(err).Error("Price range query failed")
		return &PriceRangeResult{Category: echo, Error: "price range query failed"}
	}

	return &PriceRangeResult{
		MinPrice:   stats.MinPrice,
		MaxPrice:   stats.MaxPrice,
		TotalCount: stats.TotalCount,
		Category:   echo,
	}
}

// ShowProducts executes the show_products tool. An empty id list
// short-circuits without touching the catalog.
func (e *Executor) ShowProducts(ctx context.Context, args ShowArgs) *ProductsResult {
	ids := make([]string, 0, len(args.IDs))
	for _, id := range args.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return &ProductsResult{Products: []catalog.Product{}}
	}

	products, err := e.catalog.ByIDs(ctx, ids)
	if err != nil {
		logger.Log.WithError(err).Error("Product lookup failed")
		return &ProductsResult{Products: []catalog.Product{}, Error: "product lookup failed"}
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return &ProductsResult{Products: products}
}
