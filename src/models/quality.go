package models

// QualityMetrics captures how complete the ingested data was.
type QualityMetrics struct {
	BankTransactions     int     `json:"bank_transactions"`
	SalesInvoices        int     `json:"sales_invoices"`
	PurchaseInvoices     int     `json:"purchase_invoices"`
	CoverageDays         int     `json:"coverage_days"`
	CoverageMonths       float64 `json:"coverage_months"`
	ParseSuccessRate     float64 `json:"parse_success_rate"`
	HasFutureCollections bool    `json:"has_future_collections"`
	HasFuturePayments    bool    `json:"has_future_payments"`
	WarningsCount        int     `json:"warnings_count"`
}

// QualityReport is the data-quality assessment for one analysis run.
type QualityReport struct {
	CoverageMonths  float64        `json:"coverage_months"`
	ConfidenceLevel Confidence     `json:"confidence_level"`
	Metrics         QualityMetrics `json:"quality_metrics"`
	Warnings        []string       `json:"warnings"`
}
