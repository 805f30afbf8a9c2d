// pkg/dataset/value.go
package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Kind identifies the semantic type of a cell value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindDate
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Value is a single typed cell. The zero Value is a null string cell.
// Null is an explicit marker, distinct from the empty string or zero number.
type Value struct {
	kind Kind
	null bool
	str  string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Null returns a null value.
func Null() Value {
	return Value{null: true}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int returns an integer value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a float value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Date returns a calendar-date value.
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t}
}

// FromAny converts a dynamically-typed scalar (as produced by database/sql
// scans or JSON decoding) into a Value. Unrecognised types are rendered
// through fmt as strings so a source row never fails to materialise.
func FromAny(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case string:
		return String(val)
	case []byte:
		return String(string(val))
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case time.Time:
		return Date(val)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// IsNull reports whether the value is the missing marker.
func (v Value) IsNull() bool {
	return v.null
}

// Kind returns the value's kind. Meaningless for null values.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the underlying string for string values, or the rendered
// form for every other kind. Null renders as the empty string.
func (v Value) Str() string {
	if v.null {
		return ""
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return cast.ToString(v.i)
	case KindFloat:
		return cast.ToString(v.f)
	case KindBool:
		return cast.ToString(v.b)
	case KindDate:
		return v.t.Format("2006-01-02")
	default:
		return ""
	}
}

// Int64 returns the integer payload. Valid only for KindInt.
func (v Value) Int64() int64 {
	return v.i
}

// Float64 returns the float payload. Valid only for KindFloat.
func (v Value) Float64() float64 {
	return v.f
}

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool {
	return v.b
}

// Time returns the date payload. Valid only for KindDate.
func (v Value) Time() time.Time {
	return v.t
}

// Equal reports whether two values are exactly equal, including nullness
// and kind. Used for duplicate-row detection.
func (v Value) Equal(o Value) bool {
	if v.null || o.null {
		return v.null == o.null
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return false
	}
}

// Interface returns the value as a driver-friendly scalar, with null
// mapping to nil.
func (v Value) Interface() interface{} {
	if v.null {
		return nil
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindDate:
		return v.t
	default:
		return nil
	}
}

// dateFormats are tried in order when coercing strings to dates.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006 January 02",
	"January 2006 02",
	"02 January 2006",
	"01/02/2006",
	"2006/01/02",
}

// parseDate attempts the supported date layouts in order.
func parseDate(s string) (time.Time, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Coerce converts the value to the requested kind. A null stays null and
// any value that cannot be represented in the target kind becomes null:
// coercion failures are row-local, never fatal.
func (v Value) Coerce(k Kind) Value {
	if v.null {
		return v
	}
	if v.kind == k {
		return v
	}
	switch k {
	case KindString:
		return String(v.Str())
	case KindInt:
		i, err := cast.ToInt64E(v.Interface())
		if err != nil {
			return Null()
		}
		return Int(i)
	case KindFloat:
		f, err := cast.ToFloat64E(v.Interface())
		if err != nil {
			return Null()
		}
		return Float(f)
	case KindBool:
		b, err := cast.ToBoolE(v.Interface())
		if err != nil {
			return Null()
		}
		return Bool(b)
	case KindDate:
		if t, ok := parseDate(v.Str()); ok {
			return Date(t)
		}
		return Null()
	default:
		return Null()
	}
}
