// pkg/extract/api_test.go
package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
)

func newStoreAPIServer(t *testing.T, apiKey string, stores []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/prod/number_stores", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != apiKey {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprintf(w, `{"number_stores": %d}`, len(stores))
	})

	mux.HandleFunc("/prod/store_details/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != apiKey {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var n int
		if _, err := fmt.Sscanf(r.URL.Path, "/prod/store_details/%d", &n); err != nil || n >= len(stores) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, stores[n])
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func storeAPIConfig(srv *httptest.Server, key string) *config.APIConfig {
	return &config.APIConfig{
		Key:            key,
		NumberOfStores: srv.URL + "/prod/number_stores",
		StoreDetails:   srv.URL + "/prod/store_details",
	}
}

func TestNumberOfStores(t *testing.T) {
	srv := newStoreAPIServer(t, "secret", []string{`{}`, `{}`, `{}`})
	api := NewStoreAPI(storeAPIConfig(srv, "secret"))

	count, err := api.NumberOfStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestNumberOfStoresRejectedWithoutKey(t *testing.T) {
	srv := newStoreAPIServer(t, "secret", nil)
	api := NewStoreAPI(storeAPIConfig(srv, "wrong"))

	_, err := api.NumberOfStores(context.Background())
	assert.Error(t, err)
}

func TestRetrieveStores(t *testing.T) {
	srv := newStoreAPIServer(t, "secret", []string{
		`{"index": 0, "store_code": "WEB-1388012W", "country_code": "GB", "staff_numbers": "325"}`,
		`{"index": 1, "store_code": "BL-8387506C", "country_code": "DE", "latitude": "53.55295"}`,
	})
	api := NewStoreAPI(storeAPIConfig(srv, "secret"))

	ds, err := api.RetrieveStores(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "WEB-1388012W", ds.Get(0, "store_code").Str())
	assert.Equal(t, int64(1), ds.Get(1, "index").Int64())
	assert.True(t, ds.Get(0, "latitude").IsNull(),
		"fields absent from a store read as null")
	assert.Equal(t, "DE", ds.Get(1, "country_code").Str())
}

func TestRetrieveStoresFailsWhenAStorePageFails(t *testing.T) {
	srv := newStoreAPIServer(t, "secret", []string{`{"index": 0}`})
	cfg := storeAPIConfig(srv, "secret")
	cfg.StoreDetails = srv.URL + "/prod/missing"
	api := NewStoreAPI(cfg)

	_, err := api.RetrieveStores(context.Background())
	assert.Error(t, err)
}
