// Package parsers normalizes heterogeneous bank-statement and invoice
// exports into canonical rows. Reading is deliberately permissive: several
// delimiters, a sniffing fallback and alternate text encodings are attempted
// before giving up on a file.
package parsers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Table is a parsed delimited file: lowercased, trimmed headers plus data rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the value at column idx for the given row, or "" when the row
// is shorter than the header (ragged exports are common).
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ErrNotTabular signals that no attempt produced more than one column, i.e.
// the file is not the delimited table the caller expected.
var ErrNotTabular = errors.New("file is not a recognizable delimited table")

var candidateDelimiters = []rune{',', ';', '\t', '|'}

// ReadTable reads a delimited text table. It tries each known delimiter in
// order and accepts the first attempt yielding more than one column, then
// falls back to delimiter sniffing, then retries everything with Latin
// encodings. A single-column result after all attempts is a hard failure.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

	if t := tryDelimiters(data); t != nil {
		return t, nil
	}
	if delim, ok := sniffDelimiter(data); ok {
		if t := parseDelimited(data, delim); t != nil {
			return t, nil
		}
	}
	for _, cm := range []*charmap.Charmap{charmap.ISO8859_1, charmap.Windows1252} {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		if t := tryDelimiters(decoded); t != nil {
			return t, nil
		}
	}
	return nil, ErrNotTabular
}

func tryDelimiters(data []byte) *Table {
	for _, delim := range candidateDelimiters {
		if t := parseDelimited(data, delim); t != nil {
			return t
		}
	}
	return nil
}

// parseDelimited parses with one delimiter and returns nil unless the result
// has more than one column and at least a header row.
func parseDelimited(data []byte, delim rune) *Table {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}
	headers := records[0]
	if len(headers) < 2 {
		return nil
	}
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return &Table{Headers: normalized, Rows: records[1:]}
}

// sniffDelimiter picks the candidate occurring most often in the first line.
func sniffDelimiter(data []byte) (rune, bool) {
	firstLine := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		firstLine = data[:idx]
	}
	var best rune
	bestCount := 0
	for _, delim := range candidateDelimiters {
		if n := bytes.Count(firstLine, []byte(string(delim))); n > bestCount {
			best, bestCount = delim, n
		}
	}
	return best, bestCount > 0
}
