// ABOUTME: Tabular upload parsing for csv, tsv, json and xlsx files
// ABOUTME: Produces a header plus ragged rows; format is chosen from the file extension

package entities

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"enrichment-app-api/core/domain"
	apperrors "enrichment-app-api/core/errors"
	"github.com/xuri/excelize/v2"
)

// Format identifies a supported upload format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const utf8BOM = "\ufeff"

// DetectFormat picks the format from the filename extension, defaulting to csv
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tsv", ".tab":
		return FormatTSV
	case ".json":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// ParseTable reads an uploaded table
func ParseTable(r io.Reader, filename string) (*domain.Table, error) {
	if r == nil {
		return nil, &apperrors.ValidationError{Field: "file", Message: "no file uploaded"}
	}

	var (
		table *domain.Table
		err   error
	)
	switch DetectFormat(filename) {
	case FormatTSV:
		table, err = parseDelimited(r, '\t')
	case FormatJSON:
		table, err = parseJSON(r)
	case FormatXLSX:
		table, err = parseXLSX(r)
	default:
		table, err = parseDelimited(r, ',')
	}
	if err != nil {
		if apperrors.IsValidation(err) {
			return nil, err
		}
		return nil, &apperrors.ValidationError{Field: "file", Message: fmt.Sprintf("could not parse %s: %v", filename, err)}
	}

	if len(table.Columns) == 0 {
		return nil, &apperrors.ValidationError{Field: "file", Message: "file has no header row"}
	}
	table.Columns[0] = strings.TrimPrefix(table.Columns[0], utf8BOM)
	for i, c := range table.Columns {
		table.Columns[i] = strings.TrimSpace(c)
	}

	return table, nil
}

func parseDelimited(r io.Reader, comma rune) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &domain.Table{}, nil
	}

	return &domain.Table{
		Columns: records[0],
		Rows:    records[1:],
	}, nil
}

// parseJSON accepts an array of flat objects; keys keep first-seen order
func parseJSON(r io.Reader) (*domain.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.New("expected a JSON array of objects")
	}

	table := &domain.Table{}
	index := map[string]int{}

	for dec.More() {
		keys, values, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}

		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(table.Columns)
				table.Columns = append(table.Columns, k)
			}
		}

		row := make([]string, len(table.Columns))
		for i, k := range keys {
			row[index[k]] = values[i]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// decodeObject reads one object preserving key order; null becomes an empty cell
func decodeObject(dec *json.Decoder) ([]string, []string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("expected a JSON object per row")
	}

	var keys, values []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}

		keys = append(keys, key)
		values = append(values, scalarString(raw))
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}

func scalarString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if trimmed[0] == '"' && json.Unmarshal(trimmed, &s) == nil {
		return s
	}
	return string(trimmed)
}

func parseXLSX(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &domain.Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &domain.Table{}, nil
	}

	return &domain.Table{
		Columns: rows[0],
		Rows:    rows[1:],
	}, nil
}
