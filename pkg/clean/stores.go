// pkg/clean/stores.go
package clean

import (
	"regexp"
	"strings"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// validCountryCodes is the fixed set of countries the business operates
// stores in.
var validCountryCodes = map[string]struct{}{
	"GB": {},
	"US": {},
	"DE": {},
}

// continentFixes rewrites known literal typos in the continent column.
// This is not fuzzy matching: only these exact values are corrected.
var continentFixes = map[string]string{
	"eeEurope":  "Europe",
	"eeAmerica": "America",
}

var nonDigitPattern = regexp.MustCompile(`\D`)

// CleanStoreData cleans the store details dataset fetched from the
// stores API. Rows whose country_code is outside the valid set are
// filtered out rather than blanked, which keeps the output invariant
// that every persisted store carries a known country. The lat column is
// an upstream duplicate of latitude and is never persisted.
func (c *Cleaner) CleanStoreData(ds *dataset.Dataset) error {
	return c.apply(ds, RuleSet{
		Entity:      "store_details",
		Required:    []string{"continent", "country_code", "staff_numbers", "opening_date", "index"},
		DropColumns: []string{"lat"},
		Pre: []Step{
			func(ds *dataset.Dataset) error {
				ReplaceSentinel(ds, nullSentinel)
				ReplaceSentinel(ds, "N/A")
				return nil
			},
		},
		Columns: []ColumnRule{
			{
				Column: "continent",
				Transform: func(v dataset.Value) dataset.Value {
					if fixed, ok := continentFixes[v.Str()]; ok {
						return dataset.String(fixed)
					}
					return v
				},
			},
			{
				Column: "country_code",
				Validate: func(_ dataset.Row, v dataset.Value) bool {
					_, ok := validCountryCodes[v.Str()]
					return ok
				},
				OnInvalid: PolicyDropRow,
			},
			{
				Column: "staff_numbers",
				Transform: func(v dataset.Value) dataset.Value {
					if v.IsNull() {
						return v
					}
					digits := nonDigitPattern.ReplaceAllString(v.Str(), "")
					if strings.TrimSpace(digits) == "" {
						return dataset.Null()
					}
					return dataset.String(digits).Coerce(dataset.KindInt)
				},
			},
			{Column: "opening_date", Transform: coerceTo(dataset.KindDate)},
		},
		Post: []Step{
			func(ds *dataset.Dataset) error {
				ds.DropNullRows()
				return nil
			},
		},
		KeyColumn: "index",
	})
}
