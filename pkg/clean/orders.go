// pkg/clean/orders.go
package clean

import (
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// CleanOrdersData cleans the orders fact dataset read from the source
// database. Name columns and the stray "1" column are never persisted;
// rows are kept only when both user_uuid and date_uuid are canonical
// identifiers, so every order joins cleanly against dim_users and
// dim_date_times.
func (c *Cleaner) CleanOrdersData(ds *dataset.Dataset) error {
	if ds.HasColumn("level_0") {
		ds.RenameColumn("level_0", "order_id")
	}
	return c.apply(ds, RuleSet{
		Entity:      "orders",
		Required:    []string{"user_uuid", "date_uuid", "index"},
		DropColumns: []string{"first_name", "last_name", "1"},
		Columns: []ColumnRule{
			{
				Column: "user_uuid",
				Validate: func(_ dataset.Row, v dataset.Value) bool {
					return ValidUUID(v.Str())
				},
				OnInvalid: PolicyDropRow,
			},
			{
				Column: "date_uuid",
				Validate: func(_ dataset.Row, v dataset.Value) bool {
					return ValidUUID(v.Str())
				},
				OnInvalid: PolicyDropRow,
			},
		},
		Post:      []Step{Normalize},
		KeyColumn: "index",
	})
}
