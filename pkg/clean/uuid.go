// pkg/clean/uuid.go
package clean

import (
	"regexp"

	"github.com/google/uuid"
)

// uuidPattern matches the canonical hyphenated textual form of a UUID.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidUUID reports whether s is the canonical textual form of a UUID:
// parsing and re-serialising must reproduce the input exactly. Uppercase
// hex, missing hyphens, braces and URN prefixes all parse but do not
// round-trip, so they are rejected.
func ValidUUID(s string) bool {
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.String() == s
}

// MatchesUUIDPattern reports whether s matches the hyphenated UUID
// pattern. Unlike ValidUUID it accepts uppercase hex digits.
func MatchesUUIDPattern(s string) bool {
	return uuidPattern.MatchString(s)
}
