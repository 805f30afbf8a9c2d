// pkg/clean/dates.go
package clean

import (
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// validTimePeriods is the closed set of trading periods in the date
// dimension.
var validTimePeriods = map[string]struct{}{
	"Late_Hours": {},
	"Morning":    {},
	"Midday":     {},
	"Evening":    {},
}

// CleanDateData cleans the date-dimension dataset. Numeric coercion of
// day/month/year runs after the null-drop inside Normalize, so a value
// that fails to parse stays in the output as a null rather than costing
// the row. That asymmetry with the other cleaners is intentional.
func (c *Cleaner) CleanDateData(ds *dataset.Dataset) error {
	return c.apply(ds, RuleSet{
		Entity:   "date_times",
		Required: []string{"time_period", "day", "month", "year"},
		Pre:      []Step{Normalize},
		Columns: []ColumnRule{
			{
				Column: "time_period",
				Validate: func(_ dataset.Row, v dataset.Value) bool {
					_, ok := validTimePeriods[v.Str()]
					return ok
				},
				OnInvalid: PolicyDropRow,
			},
			{Column: "day", Transform: coerceTo(dataset.KindInt)},
			{Column: "month", Transform: coerceTo(dataset.KindInt)},
			{Column: "year", Transform: coerceTo(dataset.KindInt)},
		},
	})
}
