// pkg/clean/dates_test.go
package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

func rawDates(t *testing.T) *dataset.Dataset {
	t.Helper()
	return dataset.New("timestamp", "month", "year", "day", "time_period", "date_uuid")
}

func dateRow(ts, month, year, day, period, uuid string) map[string]dataset.Value {
	return map[string]dataset.Value{
		"timestamp":   dataset.String(ts),
		"month":       dataset.String(month),
		"year":        dataset.String(year),
		"day":         dataset.String(day),
		"time_period": dataset.String(period),
		"date_uuid":   dataset.String(uuid),
	}
}

func TestCleanDateData(t *testing.T) {
	c := newTestCleaner(t)
	ds := rawDates(t)
	ds.AppendRowMap(dateRow("22:00:06", "9", "2012", "19", "Evening",
		"93caf182-e4e9-4c58-a977-9b4cf6a371a0"))
	ds.AppendRowMap(dateRow("09:15:00", "3", "1998", "4", "Morning",
		"8fe96c3a-d62d-4eb5-b313-cf12d9126a49"))
	ds.AppendRowMap(dateRow("12:00:00", "1", "2005", "1", "QA56GHVFDE",
		"62a1d9bc-c25e-4dc8-9b1f-a78a3cf8d6a2"))

	require.NoError(t, c.CleanDateData(ds))
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, "Evening", ds.Get(0, "time_period").Str())
	assert.Equal(t, "Morning", ds.Get(1, "time_period").Str())

	assert.Equal(t, int64(9), ds.Get(0, "month").Int64())
	assert.Equal(t, int64(1998), ds.Get(1, "year").Int64())
	assert.Equal(t, int64(4), ds.Get(1, "day").Int64())
}

// A calendar part that fails to parse costs the cell, not the row: the
// null-row drop has already run by the time the coercion happens.
func TestCleanDateDataBadCalendarPartStaysAsNull(t *testing.T) {
	c := newTestCleaner(t)
	ds := rawDates(t)
	ds.AppendRowMap(dateRow("10:00:00", "MONTH", "2012", "19", "Midday",
		"93caf182-e4e9-4c58-a977-9b4cf6a371a0"))

	require.NoError(t, c.CleanDateData(ds))
	require.Equal(t, 1, ds.Len())

	assert.True(t, ds.Get(0, "month").IsNull())
	assert.Equal(t, int64(2012), ds.Get(0, "year").Int64())
}

func TestCleanDateDataDropsSentinelAndDuplicateRows(t *testing.T) {
	c := newTestCleaner(t)
	ds := rawDates(t)
	row := dateRow("22:00:06", "9", "2012", "19", "Evening",
		"93caf182-e4e9-4c58-a977-9b4cf6a371a0")
	ds.AppendRowMap(row)
	ds.AppendRowMap(row)
	ds.AppendRowMap(dateRow("NULL", "NULL", "NULL", "NULL", "NULL", "NULL"))

	require.NoError(t, c.CleanDateData(ds))
	assert.Equal(t, 1, ds.Len())
}

func TestCleanDateDataMissingColumnFails(t *testing.T) {
	c := newTestCleaner(t)
	ds := dataset.New("timestamp")

	err := c.CleanDateData(ds)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}
