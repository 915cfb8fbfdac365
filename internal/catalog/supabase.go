package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"shop-agent/internal/config"
	"shop-agent/internal/logger"
)

const productsTable = "products"

// searchableFields are the text columns keyword filters match against
var searchableFields = []string{"name", "description", "brand", "specs"}

// SupabaseCatalog implements Catalog against a Supabase/PostgREST backend
type SupabaseCatalog struct {
	client *supabase.Client
}

// NewSupabaseCatalog creates a catalog backed by the storefront's Supabase project
func NewSupabaseCatalog(cfg config.SupabaseConfig) (*SupabaseCatalog, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseCatalog{client: client}, nil
}

// Search implements Catalog
func (c *SupabaseCatalog) Search(ctx context.Context, query Query) ([]Product, error) {
	builder := c.client.From(productsTable).Select("*", "", false)

	if filter := orFilter(query.Keywords); filter != "" {
		builder = builder.Or(filter, "")
	}
	if query.Category != "" {
		builder = builder.Eq("category", query.Category)
	}
	if query.Brand != "" {
		builder = builder.Ilike("brand", "%"+query.Brand+"%")
	}
	if query.MinPrice != nil {
		builder = builder.Gte("price", formatPrice(*query.MinPrice))
	}
	if query.MaxPrice != nil {
		builder = builder.Lte("price", formatPrice(*query.MaxPrice))
	}

	switch query.Sort {
	case SortPriceAsc:
		builder = builder.Order("price", &postgrest.OrderOpts{Ascending: true})
	case SortPriceDesc:
		builder = builder.Order("price", &postgrest.OrderOpts{Ascending: false})
	}

	if query.Limit > 0 {
		builder = builder.Limit(query.Limit, "")
	}

	var products []Product
	if _, err := builder.ExecuteTo(&products); err != nil {
		return nil, fmt.Errorf("error searching products: %w", err)
	}

	logger.Log.WithField("count", len(products)).Debug("Catalog search executed")
	return products, nil
}

// PriceStats implements Catalog. The three aggregate reads are independent
// under the same filter, so they run concurrently and join before returning.
func (c *SupabaseCatalog) PriceStats(ctx context.Context, category string) (*PriceStats, error) {
	stats := &PriceStats{}

	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		stats.MinPrice, errs[0] = c.boundaryPrice(ctx, category, true)
	}()
	go func() {
		defer wg.Done()
		stats.MaxPrice, errs[1] = c.boundaryPrice(ctx, category, false)
	}()
	go func() {
		defer wg.Done()
		stats.TotalCount, errs[2] = c.countProducts(ctx, category)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// ByIDs implements Catalog
func (c *SupabaseCatalog) ByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	var products []Product
	_, err := c.client.From(productsTable).
		Select("*", "", false).
		In("id", ids).
		ExecuteTo(&products)
	if err != nil {
		return nil, fmt.Errorf("error fetching products by id: %w", err)
	}
	return products, nil
}

// boundaryPrice returns the lowest (ascending=true) or highest price under
// the category filter. An empty catalog yields 0.
func (c *SupabaseCatalog) boundaryPrice(ctx context.Context, category string, ascending bool) (float64, error) {
	builder := c.client.From(productsTable).Select("price", "", false)
	if category != "" {
		builder = builder.Eq("category", category)
	}

	var rows []struct {
		Price float64 `json:"price"`
	}
	_, err := builder.
		Order("price", &postgrest.OrderOpts{Ascending: ascending}).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("error computing price boundary: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Price, nil
}

func (c *SupabaseCatalog) countProducts(ctx context.Context, category string) (int64, error) {
	builder := c.client.From(productsTable).Select("id", "exact", false)
	if category != "" {
		builder = builder.Eq("category", category)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	count, err := builder.Limit(1, "").ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("error counting products: %w", err)
	}
	return count, nil
}

// orFilter builds the PostgREST or= expression matching any keyword in any
// searchable field. Keywords must already be sanitized: a stray comma or
// percent would change the filter structure.
func orFilter(keywords []string) string {
	var conditions []string
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		for _, field := range searchableFields {
			conditions = append(conditions, fmt.Sprintf("%s.ilike.%%%s%%", field, keyword))
		}
	}
	return strings.Join(conditions, ",")
}

func formatPrice(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
