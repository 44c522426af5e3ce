package parsers

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parseAmount parses a money value tolerantly: currency symbols, grouping
// separators and both European ("1.234,56") and Anglo ("1,234.56") decimal
// conventions are accepted. Returns false for values that are not numeric.
func parseAmount(s string) (float64, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, false
	}
	for _, junk := range []string{"€", "$", "£", "eur", "EUR", " ", " "} {
		cleaned = strings.ReplaceAll(cleaned, junk, "")
	}

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal point, the other groups.
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		if strings.Count(cleaned, ",") == 1 {
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// Day-first layouts first: local convention for all supported exports.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"02/01/06",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
}

// parseDayFirstDate parses a date using day-first interpretation. Returns
// false for unparseable values; the caller drops those rows with a warning.
func parseDayFirstDate(s string) (time.Time, bool) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
