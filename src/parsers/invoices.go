package parsers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

// InvoiceParser normalizes sales or purchase invoice exports. The two kinds
// differ only in which counterparty synonyms apply (customer vs supplier).
type InvoiceParser struct {
	kind models.InvoiceKind
}

func NewInvoiceParser(kind models.InvoiceKind) *InvoiceParser {
	return &InvoiceParser{kind: kind}
}

// Parse reads a delimited invoice export and returns normalized invoices plus
// warnings. Amounts are stored unsigned; rows without a positive amount are
// dropped with a count warning. Missing id or status columns degrade to
// generated ids / an "unpaid" default, never to a failure.
func (p *InvoiceParser) Parse(r io.Reader) ([]models.Invoice, []string, error) {
	var warnings []string

	table, err := ReadTable(r)
	if err != nil {
		return nil, warnings, err
	}
	logger.L.Info("Invoice file read", "kind", p.kind, "rows", len(table.Rows))

	amountIdx := findColumn(table.Headers, invoiceAmountSynonyms)
	if amountIdx < 0 {
		return nil, warnings, ErrAmountColumnNotFound
	}

	idIdx := findColumn(table.Headers, invoiceIDSynonyms)
	if idIdx < 0 {
		warnings = append(warnings, "invoice id column not found, ids generated automatically")
	}

	counterpartySyns := customerSynonyms
	if p.kind == models.InvoiceKindPurchase {
		counterpartySyns = supplierSynonyms
	}
	counterpartyIdx := findColumn(table.Headers, counterpartySyns)
	if counterpartyIdx < 0 {
		warnings = append(warnings, "counterparty column not found")
	}

	// Issue-date synonyms include the bare "fecha"/"date", so due-date
	// headers must be excluded from the issue-date scan.
	issueIdx := findColumn(table.Headers, issueDateSynonyms, "venc", "due")
	if issueIdx < 0 {
		warnings = append(warnings, "issue date column not found")
	}
	dueIdx := findColumn(table.Headers, dueDateSynonyms)
	if dueIdx < 0 {
		warnings = append(warnings, "due date column not found")
	}

	statusIdx := findColumn(table.Headers, statusSynonyms)
	if statusIdx < 0 {
		warnings = append(warnings, "status column not found, assuming unpaid")
	}

	var (
		invoices []models.Invoice
		dropped  int
	)
	for i, row := range table.Rows {
		amount, ok := parseAmount(table.Cell(row, amountIdx))
		if !ok || amount <= 0 {
			dropped++
			continue
		}

		id := table.Cell(row, idIdx)
		if id == "" {
			id = fmt.Sprintf("INV-%d", i+1)
		}

		counterparty := table.Cell(row, counterpartyIdx)
		if counterparty == "" {
			counterparty = "unknown"
		}

		status := models.InvoiceStatusUnpaid
		if statusIdx >= 0 {
			status = normalizeStatus(table.Cell(row, statusIdx))
		}

		invoices = append(invoices, models.Invoice{
			InvoiceID:    id,
			Counterparty: counterparty,
			IssueDate:    parseOptionalDate(table.Cell(row, issueIdx)),
			DueDate:      parseOptionalDate(table.Cell(row, dueIdx)),
			Amount:       amount,
			Status:       status,
		})
	}

	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d invoices without a valid positive amount dropped", dropped))
	}
	if len(invoices) == 0 {
		return nil, warnings, ErrNoValidRows
	}

	logger.L.Info("Invoices normalized", "kind", p.kind, "invoices", len(invoices), "warnings", len(warnings))
	return invoices, warnings, nil
}

func parseOptionalDate(s string) *time.Time {
	if t, ok := parseDayFirstDate(s); ok {
		return &t
	}
	return nil
}

// Free-text status values mapped into the four-way enum. Anything
// unrecognized is "unknown" and treated as a pending projection downstream.
var statusTerms = map[models.InvoiceStatus][]string{
	models.InvoiceStatusPaid:    {"pagada", "pagado", "paid", "cobrada"},
	models.InvoiceStatusOverdue: {"vencida", "overdue", "atrasada"},
	models.InvoiceStatusUnpaid:  {"pendiente", "unpaid", "impaga"},
}

func normalizeStatus(raw string) models.InvoiceStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, status := range []models.InvoiceStatus{models.InvoiceStatusPaid, models.InvoiceStatusOverdue, models.InvoiceStatusUnpaid} {
		if containsAny(s, statusTerms[status]) {
			return status
		}
	}
	return models.InvoiceStatusUnknown
}
