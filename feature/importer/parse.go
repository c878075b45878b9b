package importer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"par-manager/core/catalog"

	"github.com/xuri/excelize/v2"
)

// Format is a supported source file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ContentType returns the MIME type used when archiving the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatTSV:
		return "text/tab-separated-values"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// DetectFormat picks the format from a file name extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", catalog.Validation("file", fmt.Sprintf("unsupported file type %q", filepath.Ext(name)))
	}
}

// ParseFile parses data in the format implied by name.
func ParseFile(name string, data []byte) ([]RawRow, Format, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, "", err
	}
	rows, err := Parse(format, bytes.NewReader(data))
	return rows, format, err
}

// Parse reads rows in the given format.
func Parse(format Format, r io.Reader) ([]RawRow, error) {
	switch format {
	case FormatCSV:
		return ParseDelimited(r, ',')
	case FormatTSV:
		return ParseDelimited(r, '\t')
	case FormatXLSX:
		return ParseXLSX(r)
	case FormatJSON:
		return ParseJSON(r)
	default:
		return nil, catalog.Validation("format", fmt.Sprintf("unsupported format %q", format))
	}
}

// ParseDelimited reads a header row followed by data rows. Short rows are
// padded with blanks, and blank lines are skipped.
func ParseDelimited(r io.Reader, comma rune) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, catalog.Validation("file", fmt.Sprintf("malformed delimited file: %v", err))
	}
	return fromGrid(records), nil
}

// ParseXLSX reads the first sheet of a workbook, first row as header.
func ParseXLSX(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, catalog.Validation("file", fmt.Sprintf("unreadable workbook: %v", err))
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []RawRow{}, nil
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromGrid(grid), nil
}

// ParseJSON reads an array of objects, or an object with a "rows" array.
func ParseJSON(r io.Reader) ([]RawRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []RawRow{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if data[0] == '{' {
		var wrapped struct {
			Rows []RawRow `json:"rows"`
		}
		if err := dec.Decode(&wrapped); err != nil {
			return nil, catalog.Validation("file", fmt.Sprintf("malformed JSON: %v", err))
		}
		if wrapped.Rows == nil {
			return nil, catalog.Validation("file", `JSON object must carry a "rows" array`)
		}
		return wrapped.Rows, nil
	}

	var rows []RawRow
	if err := dec.Decode(&rows); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, catalog.Validation("file", "JSON rows must be objects")
		}
		return nil, catalog.Validation("file", fmt.Sprintf("malformed JSON: %v", err))
	}
	return rows, nil
}

// fromGrid maps a header row plus data rows to raw rows.
func fromGrid(grid [][]string) []RawRow {
	// first row with any content is the header
	start := -1
	for i, record := range grid {
		if !blankRecord(record) {
			start = i
			break
		}
	}
	if start < 0 {
		return []RawRow{}
	}

	header := grid[start]
	rows := make([]RawRow, 0, len(grid)-start-1)
	for _, record := range grid[start+1:] {
		if blankRecord(record) {
			continue
		}
		raw := make(RawRow, len(header))
		for i, key := range header {
			if strings.TrimSpace(key) == "" {
				continue
			}
			if i < len(record) {
				raw[key] = record[i]
			} else {
				raw[key] = ""
			}
		}
		rows = append(rows, raw)
	}
	return rows
}

func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
