package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row maps column names to cell values.
type Row map[string]string

// Table is an in-memory CSV table. Column order and row order are preserved
// across a read/write round trip.
type Table struct {
	Columns []string
	Rows    []Row
}

// Read parses a CSV table from r. The first record is the header. Short
// records pad missing cells with ""; extra cells are ignored.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &Table{Columns: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows)+2, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Load reads a CSV table from the file at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Require returns an error naming the first missing column. Callers treat
// this as fatal before any row is processed.
func (t *Table) Require(cols ...string) error {
	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = true
	}
	for _, c := range cols {
		if !have[c] {
			return fmt.Errorf("required column %q not found; available columns: %s",
				c, strings.Join(t.Columns, ", "))
		}
	}
	return nil
}

// Write emits the table as CSV to w using the table's column order. Cells
// missing from a row are written as "".
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save rewrites the file at path with the table contents.
func (t *Table) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
