// pkg/clean/users.go
package clean

import (
	"regexp"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// Phone dialing-convention patterns per supported country code. They
// are anchored at the start to mirror prefix matching; numbers for any
// other country code are left untouched.
var phonePatterns = map[string]*regexp.Regexp{
	"GB": regexp.MustCompile(`^(?:(?:\+44\s?\(0\)\s?\d{2,4}|\(?\d{2,5}\)?)\s?\d{3,4}\s?\d{3,4}$|\d{10,11}|\+44\s?\d{2,5}\s?\d{3,4}\s?\d{3,4})$`),
	"DE": regexp.MustCompile(`^(?:\(?(?:[\d \-\)–\+\/\(]+){6,}\)?(?:[ .\-–\/]?)(?:\d+))`),
	"US": regexp.MustCompile(`^\(?\d{3}\)?-? *\d{3}-? *-?\d{4}`),
}

// CleanUserData cleans the raw legacy users dataset: null/duplicate
// normalization, date-of-birth and join-date coercion, GB country-code
// backfill for "United Kingdom" rows, per-country phone validation, and
// a canonical-UUID row filter on user_uuid.
func (c *Cleaner) CleanUserData(ds *dataset.Dataset) error {
	return c.apply(ds, RuleSet{
		Entity:   "users",
		Required: []string{"user_uuid", "date_of_birth", "join_date", "country", "country_code", "phone_number"},
		Pre:      []Step{Normalize, setUKCountryCode},
		Columns: []ColumnRule{
			{Column: "date_of_birth", Transform: coerceTo(dataset.KindDate)},
			{Column: "join_date", Transform: coerceTo(dataset.KindDate)},
			{
				Column:    "phone_number",
				Validate:  validPhoneForCountry,
				OnInvalid: PolicyBlank,
			},
			{
				Column: "user_uuid",
				Validate: func(_ dataset.Row, v dataset.Value) bool {
					return ValidUUID(v.Str())
				},
				OnInvalid: PolicyDropRow,
			},
		},
	})
}

// setUKCountryCode forces country_code to GB wherever country is the
// literal "United Kingdom". Other countries keep whatever code they
// arrived with.
func setUKCountryCode(ds *dataset.Dataset) error {
	for i := 0; i < ds.Len(); i++ {
		if ds.Get(i, "country").Str() == "United Kingdom" {
			ds.Set(i, "country_code", dataset.String("GB"))
		}
	}
	return nil
}

// validPhoneForCountry checks phone_number against the pattern for the
// row's country_code. Rows for countries outside the three supported
// codes always pass.
func validPhoneForCountry(r dataset.Row, v dataset.Value) bool {
	pattern, ok := phonePatterns[r.Get("country_code").Str()]
	if !ok {
		return true
	}
	if v.IsNull() {
		return false
	}
	return pattern.MatchString(v.Str())
}
