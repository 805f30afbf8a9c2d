// pkg/extract/api.go
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// StoreAPI fetches store details from the numbered store-details
// endpoint, one request per store.
type StoreAPI struct {
	client *http.Client
	cfg    *config.APIConfig
	logger *zap.Logger
}

// NewStoreAPI creates a store API client.
func NewStoreAPI(cfg *config.APIConfig) *StoreAPI {
	return &StoreAPI{
		client: &http.Client{Timeout: 30 * time.Second},
		cfg:    cfg,
		logger: zap.L().Named("store-api"),
	}
}

// NumberOfStores asks the API how many stores exist.
func (a *StoreAPI) NumberOfStores(ctx context.Context) (int, error) {
	var payload struct {
		NumberStores int `json:"number_stores"`
	}

	if err := a.getJSON(ctx, a.cfg.NumberOfStores, &payload); err != nil {
		return 0, fmt.Errorf("failed to fetch store count: %w", err)
	}

	return payload.NumberStores, nil
}

// RetrieveStores fetches every store's details, one page per store
// number, and assembles them into a dataset. The first store's field
// order fixes the column order; fields that only appear later are
// appended as new columns.
func (a *StoreAPI) RetrieveStores(ctx context.Context) (*dataset.Dataset, error) {
	count, err := a.NumberOfStores(ctx)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Fetching store details", zap.Int("stores", count))

	records := make([]map[string]json.RawMessage, 0, count)
	columns := make([]string, 0)
	seen := make(map[string]struct{})

	for storeNumber := 0; storeNumber < count; storeNumber++ {
		url := fmt.Sprintf("%s/%d", a.cfg.StoreDetails, storeNumber)

		var record map[string]json.RawMessage
		if err := a.getJSON(ctx, url, &record); err != nil {
			return nil, fmt.Errorf("failed to fetch store %d: %w", storeNumber, err)
		}

		for key := range record {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
		}
		records = append(records, record)
	}

	ds := dataset.New(columns...)
	for _, record := range records {
		row := make(map[string]dataset.Value, len(record))
		for key, raw := range record {
			row[key] = valueFromJSON(raw)
		}
		ds.AppendRowMap(row)
	}

	return ds, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (a *StoreAPI) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", a.cfg.Key)

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// valueFromJSON converts one raw JSON scalar into a typed cell.
// Integral numbers become ints, everything else keeps its JSON type.
func valueFromJSON(raw json.RawMessage) dataset.Value {
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		if i, err := num.Int64(); err == nil {
			return dataset.Int(i)
		}
		if f, err := num.Float64(); err == nil {
			return dataset.Float(f)
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return dataset.String(s)
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return dataset.Bool(b)
	}

	// null, arrays and objects all map to the missing marker.
	return dataset.Null()
}
