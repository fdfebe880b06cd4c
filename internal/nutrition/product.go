package nutrition

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const SourceOpenFoodFacts = "openfoodfacts"

// RawProduct is a product record as returned by Open Food Facts. Most
// fields are optional and numbers may arrive as strings.
type RawProduct struct {
	ID               string         `json:"_id"`
	Code             string         `json:"code"`
	ProductName      string         `json:"product_name"`
	GenericName      string         `json:"generic_name"`
	Brands           string         `json:"brands"`
	ServingSize      string         `json:"serving_size"`
	ServingQuantity  any            `json:"serving_quantity"`
	NutritionDataPer string         `json:"nutrition_data_per"`
	Nutriments       map[string]any `json:"nutriments"`
}

// FoodItem is a product normalized to per-serving values. Nil fields are
// unknown; Calories is always a finite, non-negative number.
type FoodItem struct {
	Barcode      *string  `json:"barcode"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	ServingSizeG *float64 `json:"servingSizeG"`
	Calories     float64  `json:"calories"`
	ProteinG     *float64 `json:"proteinG"`
	CarbsG       *float64 `json:"carbsG"`
	FatG         *float64 `json:"fatG"`
	FiberG       *float64 `json:"fiberG"`
	SugarG       *float64 `json:"sugarG"`
	SodiumMg     *int     `json:"sodiumMg"`
	Source       string   `json:"source"`
}

type productResponse struct {
	Status  int        `json:"status"`
	Product RawProduct `json:"product"`
}

type searchResponse struct {
	Count    int          `json:"count"`
	Products []RawProduct `json:"products"`
}

// parseFloatAny accepts the number encodings seen in product records and
// rejects values that are not finite.
func parseFloatAny(v any) (float64, bool) {
	var (
		f  float64
		ok bool
	)
	switch t := v.(type) {
	case float64:
		f, ok = t, true
	case float32:
		f, ok = float64(t), true
	case int:
		f, ok = float64(t), true
	case int64:
		f, ok = float64(t), true
	case json.Number:
		parsed, err := t.Float64()
		f, ok = parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64)
		f, ok = parsed, err == nil
	}
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
