// pkg/clean/products.go
package clean

import (
	"math"
	"strconv"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// stillAvailableLiteral is the availability marker as it appears in the
// source, misspelling included. Matching the literal is deliberate:
// correcting it would break the mapping.
const stillAvailableLiteral = "Still_avaliable"

// CleanProductData cleans the products dataset fetched from object
// storage: weight normalization to kilograms, price parsing with the
// leading currency symbol stripped, availability-flag mapping, a
// UUID-pattern row filter, and renames to the destination column names.
func (c *Cleaner) CleanProductData(ds *dataset.Dataset) error {
	return c.apply(ds, RuleSet{
		Entity:   "products",
		Required: []string{"weight", "product_price", "date_added", "removed", "uuid"},
		Pre:      []Step{NormalizeWeights},
		Columns: []ColumnRule{
			{Column: "product_price", Transform: parsePrice},
			{Column: "date_added", Transform: coerceTo(dataset.KindDate)},
			{
				Column: "removed",
				Transform: func(v dataset.Value) dataset.Value {
					return dataset.Bool(v.Str() == stillAvailableLiteral)
				},
			},
			{
				Column: "uuid",
				Validate: func(_ dataset.Row, v dataset.Value) bool {
					return MatchesUUIDPattern(v.Str())
				},
				OnInvalid: PolicyDropRow,
			},
		},
		Renames: map[string]string{
			"Unnamed: 0":    "index",
			"weight":        "weight_kg",
			"EAN":           "ean",
			"product_price": "product_price_gbp",
			"removed":       "still_available",
		},
		KeyColumn: "index",
	})
}

// parsePrice strips the leading currency symbol, parses the remainder
// as a float and rounds to two decimals. Unparseable prices become null.
func parsePrice(v dataset.Value) dataset.Value {
	if v.IsNull() {
		return v
	}
	runes := []rune(v.Str())
	if len(runes) < 2 {
		return dataset.Null()
	}
	f, err := strconv.ParseFloat(string(runes[1:]), 64)
	if err != nil {
		return dataset.Null()
	}
	return dataset.Float(math.Round(f*100) / 100)
}
