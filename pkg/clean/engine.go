// pkg/clean/engine.go
package clean

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// Policy selects what happens to a row whose cell fails a validator.
type Policy int

const (
	// PolicyBlank replaces the offending cell with null and keeps the row.
	PolicyBlank Policy = iota
	// PolicyDropRow excludes the offending row from the output.
	PolicyDropRow
)

// Step is a whole-dataset operation run before or after the column rules.
type Step func(*dataset.Dataset) error

// ColumnRule declares the cleaning behaviour for one column: an
// optional cell transform followed by an optional validator with its
// failure policy. Validators see the whole row so they can depend on
// sibling columns.
type ColumnRule struct {
	Column    string
	Transform func(dataset.Value) dataset.Value
	Validate  func(dataset.Row, dataset.Value) bool
	OnInvalid Policy
}

// RuleSet is the declarative description of one entity cleaner. The
// engine applies it in a fixed order: required-column check, column
// drops, pre steps, column rules in declaration order, post steps,
// renames, key promotion.
type RuleSet struct {
	Entity      string
	Required    []string
	DropColumns []string
	Pre         []Step
	Columns     []ColumnRule
	Post        []Step
	Renames     map[string]string
	KeyColumn   string
}

// Cleaner applies entity rule sets to raw datasets.
type Cleaner struct {
	logger *zap.Logger
}

// NewCleaner creates a Cleaner.
func NewCleaner(logger *zap.Logger) (*Cleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Cleaner{logger: logger}, nil
}

// apply runs a rule set against a dataset in place. Only structural
// problems (a required column entirely absent) are errors; cell-level
// failures become nulls or row exclusions per the rules.
func (c *Cleaner) apply(ds *dataset.Dataset, rs RuleSet) error {
	rowsIn := ds.Len()

	if err := ds.Require(rs.Required...); err != nil {
		return fmt.Errorf("cleaning %s: %w", rs.Entity, err)
	}

	for _, col := range rs.DropColumns {
		ds.DropColumn(col)
	}

	for _, step := range rs.Pre {
		if err := step(ds); err != nil {
			return fmt.Errorf("cleaning %s: %w", rs.Entity, err)
		}
	}

	for _, rule := range rs.Columns {
		if err := c.applyColumnRule(ds, rule); err != nil {
			return fmt.Errorf("cleaning %s: %w", rs.Entity, err)
		}
	}

	for _, step := range rs.Post {
		if err := step(ds); err != nil {
			return fmt.Errorf("cleaning %s: %w", rs.Entity, err)
		}
	}

	for old, new := range rs.Renames {
		ds.RenameColumn(old, new)
	}

	if rs.KeyColumn != "" && ds.HasColumn(rs.KeyColumn) {
		if err := ds.SetKey(rs.KeyColumn); err != nil {
			return fmt.Errorf("cleaning %s: %w", rs.Entity, err)
		}
	}

	c.logger.Info("Cleaned dataset",
		zap.String("entity", rs.Entity),
		zap.Int("rowsIn", rowsIn),
		zap.Int("rowsOut", ds.Len()),
		zap.Int("rowsDropped", rowsIn-ds.Len()))

	return nil
}

// applyColumnRule runs one column rule. Rules for columns the dataset
// does not carry are skipped unless the column was declared Required,
// which apply has already enforced.
func (c *Cleaner) applyColumnRule(ds *dataset.Dataset, rule ColumnRule) error {
	if !ds.HasColumn(rule.Column) {
		return nil
	}

	if rule.Transform != nil {
		if err := ds.MapColumn(rule.Column, rule.Transform); err != nil {
			return err
		}
	}

	if rule.Validate == nil {
		return nil
	}

	switch rule.OnInvalid {
	case PolicyDropRow:
		ds.Filter(func(r dataset.Row) bool {
			return rule.Validate(r, r.Get(rule.Column))
		})
	default:
		for i := 0; i < ds.Len(); i++ {
			if !rule.Validate(ds.Row(i), ds.Get(i, rule.Column)) {
				ds.Set(i, rule.Column, dataset.Null())
			}
		}
	}
	return nil
}

// coerceTo returns a transform that coerces cells to the given kind,
// turning unparseable values into nulls.
func coerceTo(k dataset.Kind) func(dataset.Value) dataset.Value {
	return func(v dataset.Value) dataset.Value {
		return v.Coerce(k)
	}
}
