package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"gamebot/internal/domain"
)

// Loader downloads the catalog spreadsheet and turns it into entries.
// The sheet is expected to carry Title and Url columns; everything else
// is ignored.
type Loader struct {
	client *http.Client
	url    string
}

// NewLoader creates a loader for the given spreadsheet URL.
func NewLoader(url string) *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    url,
	}
}

// Fetch downloads and parses the catalog. It returns an error if the
// sheet cannot be fetched or has no Title/Url columns; callers decide
// whether that is fatal (startup) or ignorable (manual refresh).
func (l *Loader) Fetch(ctx context.Context) ([]domain.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog download returned status %d", resp.StatusCode)
	}

	f, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog spreadsheet is empty")
	}

	titleCol, urlCol := -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "title":
			titleCol = i
		case "url":
			urlCol = i
		}
	}
	if titleCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf("catalog spreadsheet has no Title/Url columns")
	}

	var entries []domain.CatalogEntry
	for _, row := range rows[1:] {
		if titleCol >= len(row) || urlCol >= len(row) {
			continue
		}
		title := strings.TrimSpace(row[titleCol])
		url := strings.TrimSpace(row[urlCol])
		if title == "" {
			continue
		}
		entries = append(entries, domain.CatalogEntry{Title: title, Url: url})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog spreadsheet has no usable rows")
	}

	return entries, nil
}
