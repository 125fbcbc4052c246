package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Table is one parsed export section: an ordered, case-folded column list,
// the data rows aligned to it, and a name-to-index map built once at
// parse time. Read-only after ParseTable returns.
//
// Column names are not guaranteed unique; when a header repeats, the last
// occurrence owns the index map entry.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// ParseTable parses a raw section into a Table. Line 0 is the header;
// every following line is a data row. Quoted fields may embed commas.
//
// Field-count policy: rows shorter than the header are padded with empty
// fields and rows longer than the header are truncated, so every row
// aligns with the column list. The export trims trailing empty fields
// inconsistently, which makes best-effort alignment the deterministic
// choice over rejecting the file.
func ParseTable(sec *RawSection) (*Table, error) {
	if len(sec.Lines) == 0 {
		return nil, fmt.Errorf("section %q: no header row", sec.Name)
	}

	r := csv.NewReader(bytes.NewReader([]byte(strings.Join(sec.Lines, "\n"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", sec.Name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("section %q: no header row", sec.Name)
	}

	t := &Table{Name: sec.Name}

	t.Columns = make([]string, len(records[0]))
	t.index = make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		name := foldKey(h)
		t.Columns[i] = name
		t.index[name] = i
	}

	t.Rows = make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(t.Columns))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// ColumnIndex returns the position of a column by case-folded name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[foldKey(name)]
	return i, ok
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[foldKey(name)]
	return ok
}

// Cell returns the cleaned value of the named column in a row, or the
// empty string when the column is absent. Values keep their original
// case; only the lookup key is folded.
func (t *Table) Cell(row []string, name string) string {
	i, ok := t.index[foldKey(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return CleanCell(row[i])
}

// RequireColumns returns a structural error naming the first missing
// column, if any.
func (t *Table) RequireColumns(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("section %q: missing column %q", t.Name, name)
		}
	}
	return nil
}
