package tools

import (
	"context"
	"errors"
	"testing"

	"shop-agent/internal/catalog"
	"shop-agent/internal/testutil"
)

func sampleProducts(n int) []catalog.Product {
	products := make([]catalog.Product, n)
	for i := range products {
		products[i] = catalog.Product{
			ID:       string(rune('a' + i)),
			Name:     "Product",
			Price:    float64(100 * (i + 1)),
			Category: catalog.CategoryAccessory,
		}
	}
	return products
}

func TestSearchProducts_CapsResultsAtFive(t *testing.T) {
	mockCatalog := &testutil.MockCatalog{
		SearchFunc: func(ctx context.Context, query catalog.Query) ([]catalog.Product, error) {
			// Misbehaving backend returning more rows than the query limit
			return sampleProducts(8), nil
		},
	}
	executor := NewExecutor(mockCatalog)

	result := executor.SearchProducts(context.Background(), SearchArgs{Query: "charger"})
	if result.Error != "" {
		t.Fatalf("Expected no error, got: %s", result.Error)
	}
	if len(result.Products) != 5 {
		t.Errorf("Expected 5 products, got %d", len(result.Products))
	}
}

func TestSearchProducts_NormalizesAndSanitizesQuery(t *testing.T) {
	var captured catalog.Query
	mockCatalog := &testutil.MockCatalog{
		SearchFunc: func(ctx context.Context, query catalog.Query) ([]catalog.Product, error) {
			captured = query
			return nil, nil
		},
	}
	executor := NewExecutor(mockCatalog)

	executor.SearchProducts(context.Background(), SearchArgs{Query: "شاحن,100%"})

	if len(captured.Keywords) != 2 {
		t.Fatalf("Expected 2 keywords, got %v", captured.Keywords)
	}
	if captured.Keywords[0] != "charger" {
		t.Errorf("Expected Arabic term expanded to 'charger', got '%s'", captured.Keywords[0])
	}
	if captured.Keywords[1] != "100" {
		t.Errorf("Expected sanitized keyword '100', got '%s'", captured.Keywords[1])
	}
	if captured.Limit != 5 {
		t.Errorf("Expected query limit 5, got %d", captured.Limit)
	}
}

func TestSearchProducts_InvalidCategoryAndSortDropped(t *testing.T) {
	var captured catalog.Query
	mockCatalog := &testutil.MockCatalog{
		SearchFunc: func(ctx context.Context, query catalog.Query) ([]catalog.Product, error) {
			captured = query
			return nil, nil
		},
	}
	executor := NewExecutor(mockCatalog)

	executor.SearchProducts(context.Background(), SearchArgs{Category: "spaceship", Sort: "name_desc"})

	if captured.Category != "" {
		t.Errorf("Expected invalid category dropped, got '%s'", captured.Category)
	}
	if captured.Sort != "" {
		t.Errorf("Expected invalid sort dropped, got '%s'", captured.Sort)
	}
}

func TestSearchProducts_ZeroResultsIsNotAnError(t *testing.T) {
	mockCatalog := &testutil.MockCatalog{
		SearchFunc: func(ctx context.Context, query catalog.Query) ([]catalog.Product, error) {
			return nil, nil
		},
	}
	executor := NewExecutor(mockCatalog)

	result := executor.SearchProducts(context.Background(), SearchArgs{Query: "unobtainium"})
	if result.Error != "" {
		t.Errorf("Expected no error for empty match, got: %s", result.Error)
	}
	if result.Products == nil || len(result.Products) != 0 {
		t.Errorf("Expected empty product list, got %v", result.Products)
	}
}

func TestSearchProducts_CatalogFailureSetsError(t *testing.T) {
	mockCatalog := &testutil.MockCatalog{
		SearchFunc: func(ctx context.Context, query catalog.Query) ([]catalog.Product, error) {
			return nil, errors.New("connection refused")
		},
	}
	executor := NewExecutor(mockCatalog)

	result := executor.SearchProducts(context.Background(), SearchArgs{Query: "charger"})
	if result.Error == "" {
		t.Error("Expected error to be set on catalog failure")
	}
	if len(result.Products) != 0 {
		t.Errorf("Expected empty products on failure, got %d", len(result.Products))
	}
}

func TestGetPriceRange_EchoesCategoryOrAll(t *testing.T) {
	mockCatalog := &testutil.MockCatalog{
		PriceStatsFunc: func(ctx context.Context, category string) (*catalog.PriceStats, error) {
			return &catalog.PriceStats{MinPrice: 50, MaxPrice: 4500, TotalCount: 42}, nil
		},
	}
	executor := NewExecutor(mockCatalog)

	result := executor.GetPriceRange(context.Background(), PriceRangeArgs{Category: "laptop"})
	if result.Category != "laptop" {
		t.Errorf("Expected category echo 'laptop', got '%s'", result.Category)
	}
	if result.MinPrice != 50 || result.MaxPrice != 4500 || result.TotalCount != 42 {
		t.Errorf("Unexpected aggregates: %+v", result)
	}

	result = executor.GetPriceRange(context.Background(), PriceRangeArgs{})
	if result.Category != "all" {
		t.Errorf("Expected category echo 'all' when omitted, got '%s'", result.Category)
	}
}

func TestGetPriceRange_InvalidCategoryTreatedAsAll(t *testing.T) {
	var captured string
	mockCatalog := &testutil.MockCatalog{
		PriceStatsFunc: func(ctx context.Context, category string) (*catalog.PriceStats, error) {
			captured = category
			return &catalog.PriceStats{}, nil
		},
	}
	executor := NewExecutor(mockCatalog)

	result := executor.GetPriceRange(context.Background(), PriceRangeArgs{Category: "spaceship"})
	if captured != "" {
		t.Errorf("Expected empty category filter, got '%s'", captured)
	}
	if result.Category != "all" {
		t.Errorf("Expected echo 'all', got '%s'", result.Category)
	}
}

func TestShowProducts_EmptyIDsShortCircuits(t *testing.T) {
	mockCatalog := &testutil.MockCatalog{}
	executor := NewExecutor(mockCatalog)

	result := executor.ShowProducts(context.Background(), ShowArgs{})
	if result.Error != "" {
		t.Errorf("Expected no error, got: %s", result.Error)
	}
	if len(result.Products) != 0 {
		t.Errorf("Expected empty products, got %d", len(result.Products))
	}
	if mockCatalog.ByIDsCalls != 0 {
		t.Errorf("Expected no catalog query for empty ids, got %d calls", mockCatalog.ByIDsCalls)
	}

	// Whitespace-only ids count as empty too
	result = executor.ShowProducts(context.Background(), ShowArgs{IDs: []string{" ", ""}})
	if mockCatalog.ByIDsCalls != 0 {
		t.Errorf("Expected no catalog query for blank ids, got %d calls", mockCatalog.ByIDsCalls)
	}
}

func TestShowProducts_FetchesByIDs(t *testing.T) {
	mockCatalog := &testutil.MockCatalog{
		ByIDsFunc: func(ctx context.Context, ids []string) ([]catalog.Product, error) {
			return sampleProducts(2), nil
		},
	}
	executor := NewExecutor(mockCatalog)

	result := executor.ShowProducts(context.Background(), ShowArgs{IDs: []string{"a", "b"}})
	if result.Error != "" {
		t.Fatalf("Expected no error, got: %s", result.Error)
	}
	if len(result.Products) != 2 {
		t.Errorf("Expected 2 products, got %d", len(result.Products))
	}
}

func TestParseSearchArgs_MalformedJSONIsEmpty(t *testing.T) {
	args := ParseSearchArgs(`{"query": "charger", "max_price":`)
	if args != (SearchArgs{}) {
		t.Errorf("Expected zero-value args for malformed JSON, got %+v", args)
	}
}

func TestParseSearchArgs_StringifiedNumbersCoerced(t *testing.T) {
	args := ParseSearchArgs(`{"query":"charger","max_price":"500"}`)
	if args.MaxPrice == nil || float64(*args.MaxPrice) != 500 {
		t.Errorf("Expected max_price 500 from stringified number, got %v", args.MaxPrice)
	}

	args = ParseSearchArgs(`{"min_price":250.5}`)
	if args.MinPrice == nil || float64(*args.MinPrice) != 250.5 {
		t.Errorf("Expected min_price 250.5, got %v", args.MinPrice)
	}
}

func TestParseShowArgs(t *testing.T) {
	args := ParseShowArgs(`{"ids":["p1","p2"]}`)
	if len(args.IDs) != 2 || args.IDs[0] != "p1" {
		t.Errorf("Unexpected ids: %v", args.IDs)
	}

	if args := ParseShowArgs("not json"); len(args.IDs) != 0 {
		t.Errorf("Expected empty ids for malformed JSON, got %v", args.IDs)
	}
}
