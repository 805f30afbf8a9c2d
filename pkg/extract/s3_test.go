// pkg/extract/s3_test.go
package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

func TestParseObjectURL(t *testing.T) {
	tests := []struct {
		name, in, bucket, key string
		wantErr               bool
	}{
		{
			name:   "s3 scheme",
			in:     "s3://data-handling-public/products.csv",
			bucket: "data-handling-public",
			key:    "products.csv",
		},
		{
			name:   "virtual hosted https",
			in:     "https://data-handling-public.s3.eu-west-1.amazonaws.com/date_details.json",
			bucket: "data-handling-public",
			key:    "date_details.json",
		},
		{
			name:   "nested key",
			in:     "s3://bucket/a/b/c.csv",
			bucket: "bucket",
			key:    "a/b/c.csv",
		},
		{name: "unsupported scheme", in: "ftp://bucket/key.csv", wantErr: true},
		{name: "missing key", in: "s3://bucket", wantErr: true},
		{name: "missing bucket", in: "s3:///key.csv", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := ParseObjectURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.bucket, bucket)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestFetchRejectsUnsupportedFormats(t *testing.T) {
	f := &S3Fetcher{logger: zap.NewNop()}

	_, err := f.Fetch(context.Background(), "s3://bucket/card_details.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = f.Fetch(context.Background(), "s3://bucket/noextension")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseCSV(t *testing.T) {
	body := strings.NewReader("index,product_name,weight\n0,Basket,200g\n1,Candle,1.5kg\n")

	ds, err := parseCSV(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"index", "product_name", "weight"}, ds.Columns())
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Basket", ds.Get(0, "product_name").Str())
	assert.Equal(t, "1.5kg", ds.Get(1, "weight").Str())
}

func TestParseCSVShortRecordReadsAsNull(t *testing.T) {
	body := strings.NewReader("a,b\nonly\n")

	ds, err := parseCSV(body)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "only", ds.Get(0, "a").Str())
	assert.True(t, ds.Get(0, "b").IsNull())
}

func TestParseJSONArrayOfObjects(t *testing.T) {
	body := strings.NewReader(`[
		{"timestamp": "22:00:06", "day": "19", "year": "2012"},
		{"timestamp": "09:15:00", "day": "4", "year": "1998", "extra": "late"}
	]`)

	ds, err := parseJSON(body)
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "22:00:06", ds.Get(0, "timestamp").Str())
	assert.True(t, ds.Get(0, "extra").IsNull(), "late-appearing fields read as null for earlier rows")
	assert.Equal(t, "late", ds.Get(1, "extra").Str())
}

func TestParseJSONColumnarOrientation(t *testing.T) {
	body := strings.NewReader(`{
		"day": {"0": "19", "1": "4"},
		"time_period": {"0": "Evening", "1": "Morning"}
	}`)

	ds, err := parseJSON(body)
	require.NoError(t, err)

	assert.Equal(t, []string{"day", "time_period"}, ds.Columns())
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Evening", ds.Get(0, "time_period").Str())
	assert.Equal(t, "Morning", ds.Get(1, "time_period").Str())
}

func TestParseJSONInvalidBody(t *testing.T) {
	_, err := parseJSON(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestValueFromJSONTypes(t *testing.T) {
	assert.Equal(t, int64(42), valueFromJSON([]byte(`42`)).Int64())
	assert.Equal(t, 1.5, valueFromJSON([]byte(`1.5`)).Float64())
	assert.Equal(t, "text", valueFromJSON([]byte(`"text"`)).Str())
	assert.True(t, valueFromJSON([]byte(`true`)).Bool())
	assert.True(t, valueFromJSON([]byte(`null`)).IsNull())
	assert.True(t, valueFromJSON([]byte(`[1,2]`)).IsNull())
	assert.Equal(t, dataset.KindString, valueFromJSON([]byte(`"GB"`)).Kind())
}
