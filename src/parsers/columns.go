package parsers

import "strings"

// Column identification is data-driven: each field has a list of candidate
// substrings covering the locales we ingest (Spanish-first, English second).
// Supporting a new export format means extending a list, not changing code.
var (
	dateSynonyms        = []string{"fecha", "date"}
	amountSynonyms      = []string{"importe", "amount", "monto"}
	debitSynonyms       = []string{"débito", "debito", "debit", "cargo"}
	creditSynonyms      = []string{"crédito", "credito", "credit", "abono", "ingreso"}
	descriptionSynonyms = []string{"concepto", "description", "descripción", "descripcion", "detalle"}

	invoiceIDSynonyms     = []string{"id", "número", "numero", "number", "factura", "invoice"}
	customerSynonyms      = []string{"cliente", "customer", "client"}
	supplierSynonyms      = []string{"proveedor", "supplier", "vendor"}
	issueDateSynonyms     = []string{"emisión", "emision", "issue", "fecha"}
	dueDateSynonyms       = []string{"vencimiento", "venc", "due"}
	statusSynonyms        = []string{"estado", "status"}
	invoiceAmountSynonyms = []string{"importe", "amount", "total", "monto"}
)

// findColumn returns the index of the first header containing any of the
// synonyms (case-insensitive substring match), skipping headers that contain
// an excluded substring. Returns -1 when nothing matches.
func findColumn(headers []string, synonyms []string, exclude ...string) int {
	for i, header := range headers {
		h := strings.ToLower(header)
		if containsAny(h, exclude) {
			continue
		}
		if containsAny(h, synonyms) {
			return i
		}
	}
	return -1
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
