package models

import "time"

// BankTransaction is one normalized line from a bank statement export.
// It is immutable once produced by the parser; suspected duplicates are
// flagged in the parse warnings but never removed.
type BankTransaction struct {
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"` // signed: positive=inflow, negative=outflow
	Description string    `json:"description"`
}

// InvoiceStatus is the normalized four-way invoice state.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusUnknown InvoiceStatus = "unknown"
)

// InvoiceKind distinguishes sales (receivables) from purchase (payables) files.
type InvoiceKind string

const (
	InvoiceKindSales    InvoiceKind = "sales"
	InvoiceKindPurchase InvoiceKind = "purchase"
)

// Invoice is one normalized invoice row, sales or purchase.
// Amount is always stored unsigned; the sign convention (inflow for sales,
// outflow for purchases) is applied by the event unifier, not here.
type Invoice struct {
	InvoiceID    string        `json:"invoice_id"`
	Counterparty string        `json:"counterparty"`
	IssueDate    *time.Time    `json:"issue_date,omitempty"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
	Amount       float64       `json:"amount"`
	Status       InvoiceStatus `json:"status"`
}
