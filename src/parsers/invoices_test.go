package parsers

import (
	"errors"
	"strings"
	"testing"

	"github.com/username/caudal/backend/src/models"
)

func TestInvoiceParseSales(t *testing.T) {
	input := "Factura,Cliente,Fecha Emisión,Fecha Vencimiento,Importe,Estado\n" +
		"F-001,Acme,01/06/2025,01/07/2025,1200.50,pendiente\n" +
		"F-002,Globex,05/06/2025,,800,pagada\n"

	invoices, warnings, err := NewInvoiceParser(models.InvoiceKindSales).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("got %d invoices, want 2", len(invoices))
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}

	first := invoices[0]
	if first.InvoiceID != "F-001" || first.Counterparty != "Acme" {
		t.Errorf("first invoice = %+v", first)
	}
	if first.Amount != 1200.5 {
		t.Errorf("amount = %v, want 1200.5", first.Amount)
	}
	if first.Status != models.InvoiceStatusUnpaid {
		t.Errorf("status = %v, want unpaid", first.Status)
	}
	if first.IssueDate == nil || first.DueDate == nil {
		t.Fatalf("expected both dates, got issue=%v due=%v", first.IssueDate, first.DueDate)
	}
	if first.DueDate.Day() != 1 || int(first.DueDate.Month()) != 7 {
		t.Errorf("due date = %v, want 1 July", first.DueDate)
	}

	second := invoices[1]
	if second.Status != models.InvoiceStatusPaid {
		t.Errorf("status = %v, want paid", second.Status)
	}
	if second.DueDate != nil {
		t.Errorf("due date = %v, want nil for blank cell", second.DueDate)
	}
}

func TestInvoiceParsePurchaseCounterparty(t *testing.T) {
	input := "Proveedor,Importe,Estado\nOffice SL,300,pendiente\n"

	invoices, _, err := NewInvoiceParser(models.InvoiceKindPurchase).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if invoices[0].Counterparty != "Office SL" {
		t.Errorf("counterparty = %q, want %q", invoices[0].Counterparty, "Office SL")
	}
}

func TestInvoiceParseGeneratedIDs(t *testing.T) {
	input := "Cliente,Importe\nAcme,100\nGlobex,200\n"

	invoices, warnings, err := NewInvoiceParser(models.InvoiceKindSales).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if invoices[0].InvoiceID != "INV-1" || invoices[1].InvoiceID != "INV-2" {
		t.Errorf("generated ids = %q, %q", invoices[0].InvoiceID, invoices[1].InvoiceID)
	}
	joined := strings.Join(warnings, "; ")
	if !strings.Contains(joined, "ids generated") {
		t.Errorf("expected id warning, got %v", warnings)
	}
	if !strings.Contains(joined, "assuming unpaid") {
		t.Errorf("expected status warning, got %v", warnings)
	}
}

func TestInvoiceParseDropsNonPositiveAmounts(t *testing.T) {
	input := "Cliente,Importe\nAcme,100\nGlobex,0\nInitech,-50\nHooli,junk\n"

	invoices, warnings, err := NewInvoiceParser(models.InvoiceKindSales).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("got %d invoices, want 1", len(invoices))
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "positive amount") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a dropped-amount warning, got %v", warnings)
	}
}

func TestInvoiceParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"no amount column", "cliente,fecha\nAcme,01/06/2025\n", ErrAmountColumnNotFound},
		{"all rows dropped", "cliente,importe\nAcme,-5\n", ErrNoValidRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewInvoiceParser(models.InvoiceKindSales).Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input string
		want  models.InvoiceStatus
	}{
		{"Pagada", models.InvoiceStatusPaid},
		{"paid", models.InvoiceStatusPaid},
		{"cobrada", models.InvoiceStatusPaid},
		{"VENCIDA", models.InvoiceStatusOverdue},
		{"overdue", models.InvoiceStatusOverdue},
		{"pendiente", models.InvoiceStatusUnpaid},
		{"unpaid", models.InvoiceStatusUnpaid},
		{"???", models.InvoiceStatusUnknown},
		{"", models.InvoiceStatusUnknown},
	}

	for _, tt := range tests {
		if got := normalizeStatus(tt.input); got != tt.want {
			t.Errorf("normalizeStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
