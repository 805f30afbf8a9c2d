// pkg/clean/cards_test.go
package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

func rawCards(t *testing.T) *dataset.Dataset {
	t.Helper()
	return dataset.New("card_number", "expiry_date", "card_provider", "date_payment_confirmed")
}

func cardRow(number, expiry, provider, confirmed string) map[string]dataset.Value {
	return map[string]dataset.Value{
		"card_number":            dataset.String(number),
		"expiry_date":            dataset.String(expiry),
		"card_provider":          dataset.String(provider),
		"date_payment_confirmed": dataset.String(confirmed),
	}
}

func TestCleanCardData(t *testing.T) {
	c := newTestCleaner(t)
	ds := rawCards(t)
	ds.AppendRowMap(cardRow("??4971858637664481", "09/26", "VISA 16 digit", "2021-04-02"))
	ds.AppendRowMap(cardRow("4537509987455160", "11/27", "VISA 16 digit", "2015 October 10"))

	require.NoError(t, c.CleanCardData(ds))
	require.Equal(t, 2, ds.Len())

	// Stray punctuation from the document extraction is stripped.
	assert.Equal(t, "4971858637664481", ds.Get(0, "card_number").Str())
	assert.Equal(t, "4537509987455160", ds.Get(1, "card_number").Str())

	assert.Equal(t, dataset.KindDate, ds.Get(0, "date_payment_confirmed").Kind())
	assert.Equal(t, dataset.KindDate, ds.Get(1, "date_payment_confirmed").Kind())
}

func TestCleanCardDataDropsSentinelAndDuplicateRows(t *testing.T) {
	c := newTestCleaner(t)
	ds := rawCards(t)
	ds.AppendRowMap(cardRow("4971858637664481", "09/26", "VISA 16 digit", "2021-04-02"))
	ds.AppendRowMap(cardRow("4971858637664481", "09/26", "VISA 16 digit", "2021-04-02"))
	ds.AppendRowMap(cardRow("NULL", "NULL", "NULL", "NULL"))

	require.NoError(t, c.CleanCardData(ds))
	assert.Equal(t, 1, ds.Len())
}

func TestCleanCardDataMissingColumnFails(t *testing.T) {
	c := newTestCleaner(t)
	ds := dataset.New("expiry_date")

	err := c.CleanCardData(ds)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}
