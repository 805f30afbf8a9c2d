// pkg/clean/cards.go
package clean

import (
	"regexp"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// nonWordPattern matches every character that is not a letter, digit or
// underscore. Card numbers arrive from the PDF with stray punctuation.
var nonWordPattern = regexp.MustCompile(`\W`)

// CleanCardData cleans the card payments dataset extracted from the PDF
// document: null/duplicate normalization, payment-date coercion, and
// card numbers reduced to their word characters.
func (c *Cleaner) CleanCardData(ds *dataset.Dataset) error {
	return c.apply(ds, RuleSet{
		Entity:   "card_details",
		Required: []string{"card_number", "date_payment_confirmed"},
		Pre:      []Step{Normalize},
		Columns: []ColumnRule{
			{Column: "date_payment_confirmed", Transform: coerceTo(dataset.KindDate)},
			{
				Column: "card_number",
				Transform: func(v dataset.Value) dataset.Value {
					if v.IsNull() {
						return v
					}
					return dataset.String(nonWordPattern.ReplaceAllString(v.Str(), ""))
				},
			},
		},
	})
}
