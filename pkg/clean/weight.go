// pkg/clean/weight.go
package clean

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

var (
	// decimalPattern extracts the first decimal number in a string.
	decimalPattern = regexp.MustCompile(`\d+(\.\d+)?`)
	// unitPattern extracts a trailing unit suffix: digits followed by
	// letters drawn from the unit alphabet.
	unitPattern = regexp.MustCompile(`(\d+)([gkmlKGML]+)`)
)

// NormalizeWeights rewrites the product dataset's weight column from
// free-text strings to kilogram floats. Multi-pack encodings such as
// "3 x 100g" become pack count times unit weight. Only the unit codes
// "g" and "ml" trigger a divide-by-1000 conversion; litres pass through
// numerically equal to kilograms and unrecognised units are left
// unconverted. That asymmetry matches the source data's conventions.
// Unparseable strings become null.
func NormalizeWeights(ds *dataset.Dataset) error {
	if err := ds.Require("weight"); err != nil {
		return err
	}
	return ds.MapColumn("weight", func(v dataset.Value) dataset.Value {
		if v.IsNull() {
			return v
		}
		raw := v.Str()
		w, ok := parseWeight(raw)
		if !ok {
			return dataset.Null()
		}
		switch unitSuffix(raw) {
		case "g", "ml":
			w /= 1000
		}
		return dataset.Float(w)
	})
}

// parseWeight extracts the numeric weight from a raw weight string.
func parseWeight(raw string) (float64, bool) {
	if strings.Contains(raw, "x") {
		parts := strings.SplitN(raw, "x", 2)
		if len(parts) < 2 {
			return 0, false
		}
		count := decimalPattern.FindString(parts[0])
		unit := decimalPattern.FindString(parts[1])
		if count == "" || unit == "" {
			return 0, false
		}
		countF, err := strconv.ParseFloat(count, 64)
		if err != nil {
			return 0, false
		}
		unitF, err := strconv.ParseFloat(unit, 64)
		if err != nil {
			return 0, false
		}
		return countF * unitF, true
	}

	num := decimalPattern.FindString(raw)
	if num == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// unitSuffix returns the unit code detected in the raw string, or ""
// when no unit suffix is present.
func unitSuffix(raw string) string {
	m := unitPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[2]
}
