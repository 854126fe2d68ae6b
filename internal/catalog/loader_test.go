package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func catalogXLSX(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			assert.NoError(t, err)
			assert.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestLoader_Fetch(t *testing.T) {
	data := catalogXLSX(t, [][]string{
		{"Title", "Url"},
		{"God of War", "https://example.com/gow"},
		{"", "https://example.com/skip"},
		{"Gran Turismo", "https://example.com/gt"},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	entries, err := NewLoader(srv.URL).Fetch(context.Background())

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "God of War", entries[0].Title)
	assert.Equal(t, "https://example.com/gow", entries[0].Url)
	assert.Equal(t, "Gran Turismo", entries[1].Title)
}

func TestLoader_Fetch_MissingColumns(t *testing.T) {
	data := catalogXLSX(t, [][]string{
		{"Name", "Link"},
		{"God of War", "https://example.com/gow"},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL).Fetch(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Title/Url")
}

func TestLoader_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL).Fetch(context.Background())

	assert.Error(t, err)
}
