package llm

// Tool names exposed to the model
const (
	ToolSearchProducts = "search_products"
	ToolGetPriceRange  = "get_price_range"
	ToolShowProducts   = "show_products"
)

// Tool describes one callable capability in the provider manifest
type Tool struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction carries the name, description and argument schema of a tool
type ToolFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Manifest returns the fixed tool palette presented on every completion
// request. Optional fields are omittable, never nullable: some providers
// reject explicit nulls for parameters the schema marks optional, so the
// schemas only list required fields under "required" and rely on omission
// for the rest.
func Manifest() []Tool {
	return []Tool{
		{
			Type: "function",
			Function: ToolFunction{
				Name:        ToolSearchProducts,
				Description: "Search the product catalog. All parameters are optional; omit any parameter you are not using instead of sending null. Returns at most 5 products.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{
							"type":        "string",
							"description": "Free-text keywords matched against product name, description, brand and specs",
						},
						"category": map[string]any{
							"type":        "string",
							"enum":        []string{"laptop", "phone", "audio", "accessory"},
							"description": "Restrict results to one category",
						},
						"brand": map[string]any{
							"type":        "string",
							"description": "Brand name, matched case-insensitively",
						},
						"min_price": map[string]any{
							"type":        "number",
							"description": "Inclusive lower price bound",
						},
						"max_price": map[string]any{
							"type":        "number",
							"description": "Inclusive upper price bound",
						},
						"sort": map[string]any{
							"type":        "string",
							"enum":        []string{"price_asc", "price_desc"},
							"description": "Sort order by price",
						},
					},
					"required": []string{},
				},
			},
		},
		{
			Type: "function",
			Function: ToolFunction{
				Name:        ToolGetPriceRange,
				Description: "Get the minimum price, maximum price and product count for the whole catalog or one category. Omit category for the whole catalog; never send null.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"category": map[string]any{
							"type":        "string",
							"enum":        []string{"laptop", "phone", "audio", "accessory"},
							"description": "Restrict the aggregates to one category",
						},
					},
					"required": []string{},
				},
			},
		},
		{
			Type: "function",
			Function: ToolFunction{
				Name:        ToolShowProducts,
				Description: "Commit to showing exactly these products to the user. Call it with the curated subset of search result ids before giving your final answer.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"ids": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Product ids to display, taken from earlier search results",
						},
					},
					"required": []string{"ids"},
				},
			},
		},
	}
}
