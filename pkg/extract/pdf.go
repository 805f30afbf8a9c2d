// pkg/extract/pdf.go
package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/Akih1k0/Multinational-Retail-Data-Centralisation/pkg/dataset"
)

// cellGap is the horizontal distance, in PDF points, separating two
// words that belong to different table cells.
const cellGap = 25.0

// PDFExtractor pulls a row-wise text table out of a remote PDF
// document. The first text row of the first page is the header.
type PDFExtractor struct {
	client *http.Client
	logger *zap.Logger
}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		client: &http.Client{Timeout: 2 * time.Minute},
		logger: zap.L().Named("pdf-extractor"),
	}
}

// Retrieve downloads the document at url and extracts its table across
// all pages.
func (e *PDFExtractor) Retrieve(ctx context.Context, url string) (*dataset.Dataset, error) {
	path, err := e.download(ctx, url)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var ds *dataset.Dataset

	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		textRows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}

		for _, textRow := range textRows {
			cells := splitRowCells(textRow)
			if len(cells) == 0 {
				continue
			}

			if ds == nil {
				// Header row: every later row maps onto these columns.
				ds = dataset.New(cells...)
				continue
			}

			row := make(map[string]dataset.Value, len(cells))
			for i, col := range ds.Columns() {
				if i < len(cells) {
					row[col] = dataset.String(cells[i])
				}
			}
			ds.AppendRowMap(row)
		}
	}

	if ds == nil {
		return nil, fmt.Errorf("no table rows found in PDF %s", url)
	}

	e.logger.Info("Extracted PDF table",
		zap.String("url", url),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns())))

	return ds, nil
}

// download fetches the document into a temporary file and returns its
// path. The pdf reader needs random access, so the body cannot be
// streamed directly.
func (e *PDFExtractor) download(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build PDF request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download PDF: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d downloading PDF %s", resp.StatusCode, url)
	}

	tmp, err := os.CreateTemp("", "card_details_*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write PDF to disk: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

// splitRowCells groups the words of a text row into table cells by
// their horizontal position: a gap wider than cellGap starts a new cell.
func splitRowCells(row *pdf.Row) []string {
	words := make([]pdf.Text, len(row.Content))
	copy(words, row.Content)
	sort.Slice(words, func(i, j int) bool {
		return words[i].X < words[j].X
	})

	var cells []string
	current := ""
	lastX := 0.0

	for i, word := range words {
		if i > 0 && word.X-lastX > cellGap {
			cells = append(cells, current)
			current = ""
		}
		current += word.S
		lastX = word.X + word.W
	}
	if current != "" {
		cells = append(cells, current)
	}

	return cells
}
