package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// table is a header-indexed CSV file.
type table struct {
	path    string
	columns map[string]int
	header  []string
	rows    [][]string
}

// readTable reads a CSV file whose first row is a header. A leading '#' on
// the first header cell (Flee style) is ignored, and names are matched
// case-insensitively.
func readTable(path string) (*table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header of %s: %w", path, err)
	}
	t := &table{path: path, columns: make(map[string]int, len(header)), header: header}
	for i, name := range header {
		t.columns[normalizeColumn(name)] = i
	}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row of %s: %w", path, err)
		}
		if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "#")))
}

// column returns the index of the first matching column name, or -1.
func (t *table) column(names ...string) int {
	for _, n := range names {
		if i, ok := t.columns[n]; ok {
			return i
		}
	}
	return -1
}

// require returns the index of a mandatory column.
func (t *table) require(names ...string) (int, error) {
	if i := t.column(names...); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%s: missing column %q", t.path, names[0])
}

// cell returns the trimmed value at column i, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFeature parses a numeric feature; missing or non-numeric cells become
// NaN so that validation can name the location and field.
func parseFeature(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
