package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Table holds one parsed CSV file: a header index and the raw rows.
// Cell access is by column name; unknown columns, short rows and empty
// cells all read as "".
type Table struct {
	header map[string]int
	rows   [][]string
}

func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header: %w", err)
	}

	table := &Table{
		header: normalizeHeader(headerRow),
		rows:   make([][]string, 0),
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		table.rows = append(table.rows, record)
	}
	return table, nil
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Field(row int, column string) string {
	if row < 0 || row >= len(t.rows) {
		return ""
	}
	return getCell(t.rows[row], t.header, column)
}

func normalizeHeader(header []string) map[string]int {
	result := make(map[string]int, len(header))
	for i, value := range header {
		key := strings.ToLower(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		result[key] = i
	}
	return result
}

func getCell(record []string, header map[string]int, key string) string {
	index, ok := header[key]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
