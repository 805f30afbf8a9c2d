// pkg/dataset/value_test.go
package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	when := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want Value
	}{
		{"nil", nil, Null()},
		{"string", "hello", String("hello")},
		{"bytes", []byte("raw"), String("raw")},
		{"bool", true, Bool(true)},
		{"int", 7, Int(7)},
		{"int64", int64(9), Int(9)},
		{"float64", 2.5, Float(2.5)},
		{"time", when, Date(when)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, FromAny(tt.in).Equal(tt.want))
		})
	}
}

func TestValueStr(t *testing.T) {
	assert.Equal(t, "", Null().Str())
	assert.Equal(t, "text", String("text").Str())
	assert.Equal(t, "42", Int(42).Str())
	assert.Equal(t, "true", Bool(true).Str())
	assert.Equal(t, "2022-03-01", Date(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)).Str())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.False(t, Null().Equal(String("")))
	assert.False(t, String("1").Equal(Int(1)), "kind participates in equality")
	assert.True(t, Float(1.5).Equal(Float(1.5)))
}

func TestCoerceDateFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2006-07-23", time.Date(2006, 7, 23, 0, 0, 0, 0, time.UTC)},
		{"2013 October 14", time.Date(2013, 10, 14, 0, 0, 0, 0, time.UTC)},
		{"July 1995 08", time.Date(1995, 7, 8, 0, 0, 0, 0, time.UTC)},
		{"14 December 2001", time.Date(2001, 12, 14, 0, 0, 0, 0, time.UTC)},
		{"2012/10/08", time.Date(2012, 10, 8, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v := String(tt.in).Coerce(KindDate)
			require.False(t, v.IsNull())
			assert.True(t, tt.want.Equal(v.Time()))
		})
	}
}

func TestCoerceFailureBecomesNull(t *testing.T) {
	assert.True(t, String("not a date").Coerce(KindDate).IsNull())
	assert.True(t, String("NULL").Coerce(KindDate).IsNull())
	assert.True(t, String("abc").Coerce(KindInt).IsNull())
	assert.True(t, String("12.3.4").Coerce(KindFloat).IsNull())
}

func TestCoerceNullStaysNull(t *testing.T) {
	for _, k := range []Kind{KindString, KindInt, KindFloat, KindBool, KindDate} {
		assert.True(t, Null().Coerce(k).IsNull())
	}
}

func TestCoerceSuccess(t *testing.T) {
	v := String("123").Coerce(KindInt)
	require.False(t, v.IsNull())
	assert.Equal(t, int64(123), v.Int64())

	v = String("1.25").Coerce(KindFloat)
	require.False(t, v.IsNull())
	assert.Equal(t, 1.25, v.Float64())

	v = Int(42).Coerce(KindString)
	assert.Equal(t, "42", v.Str())
}

func TestCoerceSameKindIsIdentity(t *testing.T) {
	v := Float(2.5)
	assert.True(t, v.Equal(v.Coerce(KindFloat)))
}

func TestInterfaceNullMapsToNil(t *testing.T) {
	assert.Nil(t, Null().Interface())
	assert.Equal(t, "x", String("x").Interface())
	assert.Equal(t, int64(1), Int(1).Interface())
}
