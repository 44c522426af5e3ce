package parsers

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestReadTableDelimiters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		headers []string
		rows    int
	}{
		{
			name:    "comma",
			input:   "Fecha,Importe,Concepto\n01/06/2025,100,ventas\n",
			headers: []string{"fecha", "importe", "concepto"},
			rows:    1,
		},
		{
			name:    "semicolon",
			input:   "Fecha;Importe;Concepto\n01/06/2025;100;ventas\n02/06/2025;-50;alquiler\n",
			headers: []string{"fecha", "importe", "concepto"},
			rows:    2,
		},
		{
			name:    "tab",
			input:   "Date\tAmount\n01/06/2025\t100\n",
			headers: []string{"date", "amount"},
			rows:    1,
		},
		{
			name:    "pipe",
			input:   "Date|Amount|Description\n01/06/2025|100|sales\n",
			headers: []string{"date", "amount", "description"},
			rows:    1,
		},
		{
			name:    "utf8 bom stripped",
			input:   "\xEF\xBB\xBFFecha,Importe\n01/06/2025,100\n",
			headers: []string{"fecha", "importe"},
			rows:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadTable(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadTable() error = %v", err)
			}
			if len(table.Headers) != len(tt.headers) {
				t.Fatalf("got %d headers, want %d", len(table.Headers), len(tt.headers))
			}
			for i, h := range tt.headers {
				if table.Headers[i] != h {
					t.Errorf("header[%d] = %q, want %q", i, table.Headers[i], h)
				}
			}
			if len(table.Rows) != tt.rows {
				t.Errorf("got %d rows, want %d", len(table.Rows), tt.rows)
			}
		})
	}
}

func TestReadTableLatinEncoding(t *testing.T) {
	// "Año" in Latin-1 is invalid UTF-8 and trips the comma attempt until the
	// charmap fallback decodes it.
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Fecha,Año,Importe\n01/06/2025,2025,100\n")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	table, err := ReadTable(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if table.Headers[1] != "año" {
		t.Errorf("header[1] = %q, want %q", table.Headers[1], "año")
	}
}

func TestReadTableNotTabular(t *testing.T) {
	_, err := ReadTable(strings.NewReader("just some prose\nwith no structure\n"))
	if !errors.Is(err, ErrNotTabular) {
		t.Fatalf("ReadTable() error = %v, want ErrNotTabular", err)
	}
}

func TestTableCellRaggedRow(t *testing.T) {
	table, err := ReadTable(strings.NewReader("a,b,c\n1,2\n"))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	row := table.Rows[0]
	if got := table.Cell(row, 1); got != "2" {
		t.Errorf("Cell(row, 1) = %q, want %q", got, "2")
	}
	if got := table.Cell(row, 2); got != "" {
		t.Errorf("Cell(row, 2) = %q, want empty for short row", got)
	}
	if got := table.Cell(row, -1); got != "" {
		t.Errorf("Cell(row, -1) = %q, want empty", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"100", 100, true},
		{"-50.25", -50.25, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		// A single separator reads as the decimal point.
		{"1.500", 1.5, true},
		{"2,500", 2.5, true},
		{"€ 99,90", 99.9, true},
		{"1 000,50", 1000.5, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		got, ok := parseAmount(tt.input)
		if ok != tt.ok {
			t.Errorf("parseAmount(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseDayFirstDate(t *testing.T) {
	tests := []struct {
		input string
		day   int
		month int
		ok    bool
	}{
		{"15/06/2025", 15, 6, true},
		{"1/6/2025", 1, 6, true},
		{"15-06-2025", 15, 6, true},
		{"15.06.2025", 15, 6, true},
		{"2025-06-15", 15, 6, true},
		{"junk", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := parseDayFirstDate(tt.input)
		if ok != tt.ok {
			t.Errorf("parseDayFirstDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && (got.Day() != tt.day || int(got.Month()) != tt.month) {
			t.Errorf("parseDayFirstDate(%q) = %v, want day %d month %d", tt.input, got, tt.day, tt.month)
		}
	}
}
