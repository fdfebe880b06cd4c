package nutrition

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	kjPerKcal       = 4.184
	saltPerSodium   = 2.5
	gramsPerServing = 100
	mgPerGram       = 1000

	basisServing = "serving"
)

var servingGramsRegex = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(g|gr|gram|grams|ml)\b`)

// Normalize converts a raw product to per-serving values. It is a pure
// function: the same input always yields the same output.
func Normalize(raw RawProduct) FoodItem {
	grams := servingGrams(raw)
	basedOnServing := strings.EqualFold(strings.TrimSpace(raw.NutritionDataPer), basisServing)
	n := raw.Nutriments

	item := FoodItem{
		Name:         productName(raw),
		Brand:        strings.TrimSpace(raw.Brands),
		ServingSizeG: grams,
		Calories:     calories(n, basedOnServing, grams),
		ProteinG:     macro(n, "proteins", basedOnServing, grams),
		CarbsG:       macro(n, "carbohydrates", basedOnServing, grams),
		FatG:         macro(n, "fat", basedOnServing, grams),
		FiberG:       macro(n, "fiber", basedOnServing, grams),
		SugarG:       macro(n, "sugars", basedOnServing, grams),
		SodiumMg:     sodiumMg(n, basedOnServing, grams),
		Source:       SourceOpenFoodFacts,
	}
	if code := strings.TrimSpace(raw.Code); code != "" {
		item.Barcode = &code
	}

	return item
}

func productName(raw RawProduct) string {
	if name := strings.TrimSpace(raw.ProductName); name != "" {
		return name
	}
	return strings.TrimSpace(raw.GenericName)
}

// servingGrams prefers the numeric serving quantity and falls back to the
// first "<number> <unit>" in the serving size text. Millilitres count as grams.
func servingGrams(raw RawProduct) *float64 {
	if q, ok := parseFloatAny(raw.ServingQuantity); ok && q > 0 {
		return &q
	}

	m := servingGramsRegex.FindStringSubmatch(raw.ServingSize)
	if m == nil {
		return nil
	}
	g, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || g <= 0 || math.IsInf(g, 0) {
		return nil
	}
	return &g
}

func nutrient(n map[string]any, key string) (float64, bool) {
	v, ok := parseFloatAny(n[key])
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// per100g reads "<key>_100g" and converts it to a serving value. When the
// product declares its nutrition per serving the value is already one.
func per100g(n map[string]any, key string, basedOnServing bool, grams *float64) (float64, bool) {
	v, ok := nutrient(n, key+"_100g")
	if !ok {
		return 0, false
	}
	if basedOnServing {
		return v, true
	}
	if grams != nil {
		scaled := v * *grams / gramsPerServing
		if math.IsInf(scaled, 0) {
			return 0, false
		}
		return scaled, true
	}
	return 0, false
}

func perServing(n map[string]any, key string, basedOnServing bool, grams *float64) (float64, bool) {
	if v, ok := nutrient(n, key+"_serving"); ok {
		return v, true
	}
	return per100g(n, key, basedOnServing, grams)
}

func calories(n map[string]any, basedOnServing bool, grams *float64) float64 {
	if v, ok := perServing(n, "energy-kcal", basedOnServing, grams); ok {
		if kcal, finite := round2(v); finite {
			return kcal
		}
	}
	if v, ok := perServing(n, "energy-kj", basedOnServing, grams); ok {
		if kcal, finite := round2(v / kjPerKcal); finite {
			return kcal
		}
	}
	if v, ok := perServing(n, "energy", basedOnServing, grams); ok {
		if kcal, finite := round2(v / kjPerKcal); finite {
			return kcal
		}
	}
	if v, ok := nutrient(n, "energy-kcal"); ok {
		if kcal, finite := round2(v); finite {
			return kcal
		}
	}
	return 0
}

func macro(n map[string]any, key string, basedOnServing bool, grams *float64) *float64 {
	v, ok := perServing(n, key, basedOnServing, grams)
	if !ok {
		return nil
	}
	v, ok = round2(v)
	if !ok {
		return nil
	}
	return &v
}

func sodiumMg(n map[string]any, basedOnServing bool, grams *float64) *int {
	sodiumG, ok := nutrient(n, "sodium_serving")
	if !ok {
		if salt, saltOK := nutrient(n, "salt_serving"); saltOK {
			sodiumG, ok = salt/saltPerSodium, true
		}
	}
	if !ok {
		sodiumG, ok = per100g(n, "sodium", basedOnServing, grams)
	}
	if !ok {
		if salt, saltOK := per100g(n, "salt", basedOnServing, grams); saltOK {
			sodiumG, ok = salt/saltPerSodium, true
		}
	}
	if !ok {
		return nil
	}

	mgF := math.Round(sodiumG * mgPerGram)
	if math.IsInf(mgF, 0) || mgF > math.MaxInt32 {
		return nil
	}
	mg := int(mgF)
	return &mg
}

// round2 rounds to two decimals. ok is false when the result is not finite,
// which happens for inputs near math.MaxFloat64.
func round2(v float64) (_ float64, ok bool) {
	r := math.Round(v*100) / 100
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
