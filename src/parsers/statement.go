package parsers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

// Fatal parse errors. The bank statement is a required input, so any of
// these aborts the whole analysis with a specific, actionable reason.
var (
	ErrDateColumnNotFound   = errors.New("date column not found")
	ErrAmountColumnNotFound = errors.New("amount column not found")
	ErrNoValidRows          = errors.New("no valid rows after cleaning")
)

const defaultDescription = "no description"

// StatementParser normalizes bank statement exports into BankTransactions.
type StatementParser struct{}

func NewStatementParser() *StatementParser { return &StatementParser{} }

// Parse reads a delimited bank statement and returns the normalized
// transactions sorted by date, plus human-readable warnings. Rows with
// unparseable dates or amounts are dropped and counted in a warning; the
// file is never silently discarded while any rows are salvageable.
func (p *StatementParser) Parse(r io.Reader) ([]models.BankTransaction, []string, error) {
	var warnings []string

	table, err := ReadTable(r)
	if err != nil {
		return nil, warnings, err
	}
	logger.L.Info("Bank statement read", "rows", len(table.Rows), "columns", len(table.Headers))

	dateIdx := findColumn(table.Headers, dateSynonyms)
	if dateIdx < 0 {
		return nil, warnings, ErrDateColumnNotFound
	}
	// "total" columns are aggregates, not per-row amounts.
	amountIdx := findColumn(table.Headers, amountSynonyms, "total")
	debitIdx := findColumn(table.Headers, debitSynonyms)
	creditIdx := findColumn(table.Headers, creditSynonyms)
	if amountIdx < 0 && debitIdx < 0 && creditIdx < 0 {
		return nil, warnings, ErrAmountColumnNotFound
	}

	descIdx := findColumn(table.Headers, descriptionSynonyms)
	if descIdx < 0 {
		// Fall back to the first column not already claimed by another field.
		for i := range table.Headers {
			if i != dateIdx && i != amountIdx && i != debitIdx && i != creditIdx {
				descIdx = i
				break
			}
		}
		if descIdx < 0 {
			warnings = append(warnings, fmt.Sprintf("description column not found, using %q", defaultDescription))
		}
	}

	var (
		txs            []models.BankTransaction
		droppedDates   int
		droppedAmounts int
	)
	for _, row := range table.Rows {
		date, ok := parseDayFirstDate(table.Cell(row, dateIdx))
		if !ok {
			droppedDates++
			continue
		}

		var amount float64
		if amountIdx >= 0 {
			amount, ok = parseAmount(table.Cell(row, amountIdx))
			if !ok {
				droppedAmounts++
				continue
			}
		} else {
			// Combine separate debit/credit columns; a missing or blank side
			// counts as zero.
			debit, _ := parseAmount(table.Cell(row, debitIdx))
			credit, _ := parseAmount(table.Cell(row, creditIdx))
			amount = credit - debit
		}

		desc := table.Cell(row, descIdx)
		if desc == "" {
			desc = defaultDescription
		}

		txs = append(txs, models.BankTransaction{Date: date, Amount: amount, Description: desc})
	}

	if droppedDates > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows with invalid dates dropped", droppedDates))
	}
	if droppedAmounts > 0 {
		warnings = append(warnings, fmt.Sprintf("%d rows with invalid amounts dropped", droppedAmounts))
	}
	if len(txs) == 0 {
		return nil, warnings, ErrNoValidRows
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	if dups := countDuplicates(txs); dups > 0 {
		// Flag only; removal is left to the operator, same date+amount can be
		// two legitimate transactions.
		warnings = append(warnings, fmt.Sprintf("%d possible duplicate transactions detected (same date and amount)", dups))
	}

	logger.L.Info("Bank statement normalized", "transactions", len(txs), "warnings", len(warnings))
	return txs, warnings, nil
}

func countDuplicates(txs []models.BankTransaction) int {
	type key struct {
		date   time.Time
		amount float64
	}
	seen := make(map[key]bool, len(txs))
	dups := 0
	for _, tx := range txs {
		k := key{tx.Date, tx.Amount}
		if seen[k] {
			dups++
		}
		seen[k] = true
	}
	return dups
}
