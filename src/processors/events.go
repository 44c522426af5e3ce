// Package processors contains the deterministic analysis pipeline: event
// unification, cashflow projection, survival metrics, scenario simulation,
// data-quality scoring and alert/plan generation. Everything here is pure
// computation over in-memory slices; "now" is always passed in explicitly so
// runs are reproducible.
package processors

import (
	"fmt"
	"time"

	"github.com/username/caudal/backend/src/logger"
	"github.com/username/caudal/backend/src/models"
)

const (
	// Collection terms assumed when an invoice has an issue date but no due date.
	defaultPaymentTermsDays = 30
	// Ingestion-level pessimism applied to projected collections in
	// conservative mode.
	conservativeShiftDays = 15
	// Number of synthetic monthly fixed-cost events. Spacing is a flat 30
	// days, not calendar-month aware.
	fixedCostMonths = 12
)

// EventUnifier merges normalized bank rows, invoice rows and synthetic
// recurring costs into one list of dated, signed cash events.
type EventUnifier struct{}

func NewEventUnifier() *EventUnifier { return &EventUnifier{} }

// Build produces the unified event list. Bank transactions become
// high-confidence events verbatim. Unpaid/overdue/unknown invoices become
// medium-confidence projections; paid invoices are excluded on the assumption
// they already appear in the bank history (no reconciliation is attempted,
// a known precision gap). The output is not sorted; consumers sort as needed.
func (u *EventUnifier) Build(
	bank []models.BankTransaction,
	sales []models.Invoice,
	purchases []models.Invoice,
	fixedCostsMonthly float64,
	conservativeMode bool,
	now time.Time,
) []models.CashEvent {
	events := make([]models.CashEvent, 0, len(bank)+len(sales)+len(purchases)+fixedCostMonths)

	for _, tx := range bank {
		events = append(events, models.CashEvent{
			Date:        tx.Date,
			Amount:      tx.Amount,
			Direction:   directionOf(tx.Amount),
			Source:      models.SourceBank,
			Description: tx.Description,
			Confidence:  models.ConfidenceHigh,
			Status:      "completed",
		})
	}

	for _, inv := range sales {
		date, ok := projectedDate(inv)
		if !ok {
			continue
		}
		if conservativeMode {
			// Collection-risk pessimism at ingestion time, distinct from the
			// scenario engine's own adjustments.
			date = date.AddDate(0, 0, conservativeShiftDays)
		}
		events = append(events, models.CashEvent{
			Date:         date,
			Amount:       inv.Amount,
			Direction:    models.DirectionInflow,
			Source:       models.SourceInvoiceSales,
			Description:  fmt.Sprintf("expected collection: %s", inv.Counterparty),
			Confidence:   models.ConfidenceMedium,
			InvoiceID:    inv.InvoiceID,
			Counterparty: inv.Counterparty,
			Status:       string(inv.Status),
		})
	}

	for _, inv := range purchases {
		date, ok := projectedDate(inv)
		if !ok {
			continue
		}
		events = append(events, models.CashEvent{
			Date:         date,
			Amount:       -abs(inv.Amount), // outflow regardless of stored sign
			Direction:    models.DirectionOutflow,
			Source:       models.SourceInvoicePurchase,
			Description:  fmt.Sprintf("expected payment: %s", inv.Counterparty),
			Confidence:   models.ConfidenceMedium,
			InvoiceID:    inv.InvoiceID,
			Counterparty: inv.Counterparty,
			Status:       string(inv.Status),
		})
	}

	if fixedCostsMonthly > 0 {
		for i := 0; i < fixedCostMonths; i++ {
			events = append(events, models.CashEvent{
				Date:        now.AddDate(0, 0, 30*i),
				Amount:      -abs(fixedCostsMonthly),
				Direction:   models.DirectionOutflow,
				Source:      models.SourceFixedCosts,
				Description: "monthly fixed costs",
				Confidence:  models.ConfidenceMedium,
				Status:      "projected",
			})
		}
	}

	logger.L.Info("Events unified",
		"total", len(events),
		"bank", countBySource(events, models.SourceBank),
		"sales", countBySource(events, models.SourceInvoiceSales),
		"purchases", countBySource(events, models.SourceInvoicePurchase),
		"fixed", countBySource(events, models.SourceFixedCosts),
	)
	return events
}

// projectedDate resolves the effective cash date of a pending invoice:
// due date if present, else issue date plus default terms, else the invoice
// is unusable. Paid invoices never project.
func projectedDate(inv models.Invoice) (time.Time, bool) {
	if inv.Status == models.InvoiceStatusPaid {
		return time.Time{}, false
	}
	if inv.DueDate != nil {
		return *inv.DueDate, true
	}
	if inv.IssueDate != nil {
		return inv.IssueDate.AddDate(0, 0, defaultPaymentTermsDays), true
	}
	return time.Time{}, false
}

func directionOf(amount float64) models.Direction {
	if amount > 0 {
		return models.DirectionInflow
	}
	return models.DirectionOutflow
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func countBySource(events []models.CashEvent, source models.EventSource) int {
	n := 0
	for _, e := range events {
		if e.Source == source {
			n++
		}
	}
	return n
}
