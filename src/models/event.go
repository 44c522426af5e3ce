package models

import "time"

// EventSource identifies where a cash event originated.
type EventSource string

const (
	SourceBank            EventSource = "bank"
	SourceInvoiceSales    EventSource = "invoice_sales"
	SourceInvoicePurchase EventSource = "invoice_purchase"
	SourceFixedCosts      EventSource = "fixed_costs"
)

// Direction of a cash movement. Must agree with the sign of the amount.
type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// Confidence grades how much an event (or a whole analysis) can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// CashEvent is the unified representation of one dated, signed cash movement.
// Bank-sourced events are high-confidence history; invoice and fixed-cost
// events are medium-confidence projections. Scenario runs copy events before
// shifting dates, the base list is never mutated.
type CashEvent struct {
	Date         time.Time   `json:"date"`
	Amount       float64     `json:"amount"` // positive=inflow, negative=outflow
	Direction    Direction   `json:"direction"`
	Source       EventSource `json:"source"`
	Description  string      `json:"description"`
	Confidence   Confidence  `json:"confidence"`
	InvoiceID    string      `json:"invoice_id,omitempty"`
	Counterparty string      `json:"counterparty,omitempty"`
	Status       string      `json:"status,omitempty"`
}
