// pkg/extract/s3.go
package extract

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appconfig "github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/config"
	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// ErrUnsupportedFormat indicates the object's extension is neither CSV
// nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported file type: file is not a CSV or JSON file")

// S3Fetcher retrieves tabular objects (CSV or JSON) from object storage.
type S3Fetcher struct {
	client *s3.Client
	logger *zap.Logger
}

// NewS3Fetcher creates a fetcher using the ambient AWS credential chain.
func NewS3Fetcher(ctx context.Context, cfg *appconfig.S3Config) (*S3Fetcher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3Fetcher{
		client: s3.NewFromConfig(awsCfg),
		logger: zap.L().Named("s3-fetcher"),
	}, nil
}

// Fetch downloads the object at rawURL and parses it into a dataset.
// Both s3://bucket/key and virtual-hosted HTTPS object URLs are
// accepted; the extension decides the parser.
func (f *S3Fetcher) Fetch(ctx context.Context, rawURL string) (*dataset.Dataset, error) {
	bucket, key, err := ParseObjectURL(rawURL)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(extension(key), "."))
	if ext != "csv" && ext != "json" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, key)
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	var ds *dataset.Dataset
	switch ext {
	case "csv":
		ds, err = parseCSV(out.Body)
	case "json":
		ds, err = parseJSON(out.Body)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse s3://%s/%s: %w", bucket, key, err)
	}

	f.logger.Info("Fetched object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("rows", ds.Len()))

	return ds, nil
}

// ParseObjectURL splits an object URL into bucket and key. For HTTPS
// URLs the bucket is the first label of the host (virtual-hosted
// style); for s3:// URLs it is the authority.
func ParseObjectURL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("invalid object URL %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "s3":
		bucket = u.Host
	case "http", "https":
		bucket = strings.Split(u.Host, ".")[0]
	default:
		return "", "", fmt.Errorf("invalid object URL %q: unsupported scheme %q", rawURL, u.Scheme)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid object URL %q: missing bucket or key", rawURL)
	}

	return bucket, key, nil
}

func extension(key string) string {
	i := strings.LastIndex(key, ".")
	if i < 0 {
		return ""
	}
	return key[i:]
}

// parseCSV reads a CSV body with a header row into a string dataset.
func parseCSV(body io.Reader) (*dataset.Dataset, error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	ds := dataset.New(header...)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		row := make(map[string]dataset.Value, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = dataset.String(record[i])
			}
		}
		ds.AppendRowMap(row)
	}

	return ds, nil
}

// parseJSON reads a JSON body into a dataset. Both an array of objects
// and an object of column-name to row-number-keyed values (the pandas
// orientation the date details object uses) are supported.
func parseJSON(body io.Reader) (*dataset.Dataset, error) {
	var records []map[string]json.RawMessage
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON body: %w", err)
	}

	if err := json.Unmarshal(raw, &records); err != nil {
		columnar, cerr := parseColumnarJSON(raw)
		if cerr != nil {
			return nil, fmt.Errorf("failed to decode JSON rows: %w", err)
		}
		return columnar, nil
	}

	columns := make([]string, 0)
	seen := make(map[string]struct{})
	for _, record := range records {
		for key := range record {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				columns = append(columns, key)
			}
		}
	}

	ds := dataset.New(columns...)
	for _, record := range records {
		row := make(map[string]dataset.Value, len(record))
		for key, val := range record {
			row[key] = valueFromJSON(val)
		}
		ds.AppendRowMap(row)
	}

	return ds, nil
}

// parseColumnarJSON handles {"col": {"0": v, "1": v, ...}, ...} bodies.
func parseColumnarJSON(raw []byte) (*dataset.Dataset, error) {
	var columnsRaw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &columnsRaw); err != nil {
		return nil, err
	}

	columns := make([]string, 0, len(columnsRaw))
	for col := range columnsRaw {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	rowCount := 0
	for _, cells := range columnsRaw {
		if len(cells) > rowCount {
			rowCount = len(cells)
		}
	}

	ds := dataset.New(columns...)
	for i := 0; i < rowCount; i++ {
		row := make(map[string]dataset.Value, len(columns))
		for _, col := range columns {
			if raw, ok := columnsRaw[col][fmt.Sprintf("%d", i)]; ok {
				row[col] = valueFromJSON(raw)
			}
		}
		ds.AppendRowMap(row)
	}

	return ds, nil
}
