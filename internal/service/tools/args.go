package tools

import (
	"encoding/json"
	"strconv"
	"strings"

	"shop-agent/internal/logger"
)

// Amount is a price argument that tolerates providers stringifying numbers:
// both 500 and "500" decode to 500. Unparseable values default to zero
// instead of failing the tool call.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger.Log.WithField("value", raw).Warn("Unparseable numeric tool argument, defaulting to zero")
		return nil
	}
	*a = Amount(value)
	return nil
}

// SearchArgs are the arguments of the search_products tool
type SearchArgs struct {
	Query    string  `json:"query"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	MinPrice *Amount `json:"min_price"`
	MaxPrice *Amount `json:"max_price"`
	Sort     string  `json:"sort"`
}

// PriceRangeArgs are the arguments of the get_price_range tool
type PriceRangeArgs struct {
	Category string `json:"category"`
}

// ShowArgs are the arguments of the show_products tool
type ShowArgs struct {
	IDs []string `json:"ids"`
}

// decodeArgs fills out from the raw JSON argument string and reports
// whether decoding succeeded. Malformed JSON is logged and treated as an
// empty argument set by the callers: the model gets a normal (empty-filter)
// tool result instead of aborting the turn.
func decodeArgs(raw string, out any) bool {
	if strings.TrimSpace(raw) == "" {
		return true
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Log.WithError(err).Warn("Malformed tool arguments, treating as empty")
		return false
	}
	return true
}

// ParseSearchArgs decodes search_products arguments
func ParseSearchArgs(raw string) SearchArgs {
	var args SearchArgs
	if !decodeArgs(raw, &args) {
		return SearchArgs{}
	}
	return args
}

// ParsePriceRangeArgs decodes get_price_range arguments
func ParsePriceRangeArgs(raw string) PriceRangeArgs {
	var args PriceRangeArgs
	if !decodeArgs(raw, &args) {
		return PriceRangeArgs{}
	}
	return args
}

// ParseShowArgs decodes show_products arguments
func ParseShowArgs(raw string) ShowArgs {
	var args ShowArgs
	if !decodeArgs(raw, &args) {
		return ShowArgs{}
	}
	return args
}
