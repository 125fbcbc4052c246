package report

import (
	"reflect"
	"testing"
)

// ============================================================================
// ParseTable Tests
// ============================================================================

func TestParseTable(t *testing.T) {
	sec := &RawSection{
		Name: "attendee details",
		Lines: []string{
			"Attended,First Name,Last Name,Email",
			"Yes,Pat,Avery,pat@example.com",
			"No,Sam,Brook,sam@example.com",
		},
	}

	table, err := ParseTable(sec)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	wantCols := []string{"attended", "first name", "last name", "email"}
	if !reflect.DeepEqual(table.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", table.Columns, wantCols)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}

	// Values retain original case; only lookups fold.
	if got := table.Cell(table.Rows[0], "First Name"); got != "Pat" {
		t.Errorf("Cell(first name) = %q, want %q", got, "Pat")
	}
	if got := table.Cell(table.Rows[1], "EMAIL"); got != "sam@example.com" {
		t.Errorf("Cell(email) = %q, want %q", got, "sam@example.com")
	}
}

func TestParseTable_QuotedComma(t *testing.T) {
	sec := &RawSection{
		Name: "attendee details",
		Lines: []string{
			"Email,Join Time",
			`pat@example.com,"March 12, 2024 9:02 AM"`,
		},
	}

	table, err := ParseTable(sec)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if got := table.Cell(table.Rows[0], "join time"); got != "March 12, 2024 9:02 AM" {
		t.Errorf("quoted field = %q", got)
	}
}

func TestParseTable_RowAlignment(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "short row padded",
			line: "pat@example.com,Yes",
			want: []string{"pat@example.com", "Yes", ""},
		},
		{
			name: "long row truncated",
			line: "pat@example.com,Yes,Pat,extra",
			want: []string{"pat@example.com", "Yes", "Pat"},
		},
		{
			name: "exact row unchanged",
			line: "pat@example.com,Yes,Pat",
			want: []string{"pat@example.com", "Yes", "Pat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := &RawSection{Name: "t", Lines: []string{"Email,Attended,First Name", tt.line}}
			table, err := ParseTable(sec)
			if err != nil {
				t.Fatalf("ParseTable() error = %v", err)
			}
			if !reflect.DeepEqual(table.Rows[0], tt.want) {
				t.Errorf("row = %v, want %v", table.Rows[0], tt.want)
			}
		})
	}
}

func TestParseTable_DuplicateColumnLastWins(t *testing.T) {
	sec := &RawSection{
		Name: "t",
		Lines: []string{
			"Email,Name,Email",
			"first@example.com,Pat,last@example.com",
		},
	}

	table, err := ParseTable(sec)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	i, ok := table.ColumnIndex("email")
	if !ok || i != 2 {
		t.Errorf("ColumnIndex(email) = %d, %v; want 2, true", i, ok)
	}
	if got := table.Cell(table.Rows[0], "email"); got != "last@example.com" {
		t.Errorf("Cell(email) = %q, want last occurrence", got)
	}
}

func TestParseTable_EmptySection(t *testing.T) {
	if _, err := ParseTable(&RawSection{Name: "empty"}); err == nil {
		t.Fatal("ParseTable() expected error for empty section")
	}
}

// ============================================================================
// Column lookup Tests
// ============================================================================

func TestRequireColumns(t *testing.T) {
	sec := &RawSection{Name: "t", Lines: []string{"Email,Join Time,Leave Time"}}
	table, err := ParseTable(sec)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}

	if err := table.RequireColumns("email", "join time", "leave time"); err != nil {
		t.Errorf("RequireColumns() unexpected error: %v", err)
	}
	if err := table.RequireColumns("email", "attended"); err == nil {
		t.Error("RequireColumns() expected error for missing column")
	}
}

func TestCell_MissingColumn(t *testing.T) {
	sec := &RawSection{Name: "t", Lines: []string{"Email", "pat@example.com"}}
	table, err := ParseTable(sec)
	if err != nil {
		t.Fatalf("ParseTable() error = %v", err)
	}
	if got := table.Cell(table.Rows[0], "attended"); got != "" {
		t.Errorf("Cell(missing) = %q, want empty", got)
	}
}
