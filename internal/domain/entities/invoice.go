package entities

import (
	"fmt"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

// InvoiceLineItem is a billing line on an issued invoice.
type InvoiceLineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Invoice is materialized from an approved estimate at conversion time.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (estimate_id-index): estimate_id
//
// InvoiceNumber is sequential and year-scoped, allocated by the atomic
// counter — never derived from a read-then-write.
type Invoice struct {
	ID              string            `json:"id"`
	InvoiceNumber   string            `json:"invoiceNumber"`
	EstimateID      string            `json:"estimateId"`
	Building        string            `json:"building"`
	ApartmentNumber string            `json:"apartmentNumber,omitempty"`
	LineItems       []InvoiceLineItem `json:"lineItems"`
	IssueDate       time.Time         `json:"issueDate"`
	DueDate         time.Time         `json:"dueDate"`
	Notes           string            `json:"notes,omitempty"`
	Status          InvoiceStatus     `json:"status"`
	CreatedBy       string            `json:"createdBy,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Total sums the invoice line amounts.
func (inv Invoice) Total() float64 {
	total := 0.0
	for _, li := range inv.LineItems {
		total += li.Amount
	}
	return total
}

// FormatInvoiceNumber renders the year-scoped sequence as YYYY-NNNNNN.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("%d-%06d", year, seq)
}

// NewInvoiceFromEstimate builds the conversion payload: a single line
// summarizing the estimate. Unit price falls back to the internal cost when
// the client-facing price is zero.
func NewInvoiceFromEstimate(id, invoiceNumber string, e Estimate, now time.Time) Invoice {
	description := e.Title
	if description == "" {
		description = e.Description
	}
	unitPrice := e.EstimatedPrice
	if unitPrice == 0 {
		unitPrice = e.EstimatedCost
	}
	return Invoice{
		ID:              id,
		InvoiceNumber:   invoiceNumber,
		EstimateID:      e.ID,
		Building:        e.Building,
		ApartmentNumber: e.ApartmentNumber,
		LineItems: []InvoiceLineItem{{
			Description: description,
			Quantity:    1,
			UnitPrice:   unitPrice,
			Amount:      unitPrice,
		}},
		IssueDate: now,
		DueDate:   now.AddDate(0, 0, 30),
		Notes:     e.Notes,
		Status:    InvoiceStatusIssued,
		CreatedBy: e.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
