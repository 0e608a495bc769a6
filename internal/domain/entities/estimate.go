package entities

import (
	"errors"
	"math"
	"time"
)

// EstimateStatus represents the lifecycle of a project estimate.
//
// Domain notes:
//   - The billing core is the source of truth for estimate state.
//   - Transitions are one-directional; only `pending` fans out into
//     approved/rejected/client_accepted/client_rejected.
//   - Both converted statuses are terminal: no further transition and no
//     deletion is accepted past conversion.

type EstimateStatus string

const (
	EstimateStatusDraft                EstimateStatus = "draft"
	EstimateStatusSubmitted            EstimateStatus = "submitted"
	EstimateStatusPending              EstimateStatus = "pending"
	EstimateStatusApproved             EstimateStatus = "approved"
	EstimateStatusRejected             EstimateStatus = "rejected"
	EstimateStatusConvertedToWorkOrder EstimateStatus = "converted_to_workorder"
	EstimateStatusConvertedToInvoice   EstimateStatus = "converted_to_invoice"
	EstimateStatusClientAccepted       EstimateStatus = "client_accepted"
	EstimateStatusClientRejected       EstimateStatus = "client_rejected"
)

// EstimatePriority is a classification used only for sorting/filtering.

type EstimatePriority string

const (
	PriorityLow    EstimatePriority = "low"
	PriorityMedium EstimatePriority = "medium"
	PriorityHigh   EstimatePriority = "high"
	PriorityUrgent EstimatePriority = "urgent"
)

// TaxType selects how LineItem.Tax is applied to the item amount.

type TaxType string

const (
	TaxTypeFixed      TaxType = "fixed"
	TaxTypePercentage TaxType = "percentage"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrAlreadyConverted        = errors.New("estimate already converted")
)

// LineItem is a billing line owned exclusively by one Estimate. Items keep
// their insertion order; that order is the billing order.
//
// Amount is authoritative on create: it usually equals Qty*Rate but the
// author may override it, so totals always sum Amount, never Qty*Rate.
// Class is internal bookkeeping and is never exposed on the client view.
type LineItem struct {
	ServiceDate    *time.Time `json:"serviceDate,omitempty"`
	ProductService string     `json:"productService"`
	Description    string     `json:"description"`
	Qty            float64    `json:"qty"`
	Rate           float64    `json:"rate"`
	Amount         float64    `json:"amount"`
	Tax            float64    `json:"tax"`
	TaxType        TaxType    `json:"taxType,omitempty"`
	EstimatedCost  float64    `json:"estimatedCost"`
	Notes          string     `json:"notes,omitempty"`
	Class          string     `json:"class,omitempty"`
}

// TaxAmount applies the item tax: a percentage of Amount when TaxType is
// `percentage`, otherwise a fixed amount.
func (li LineItem) TaxAmount() float64 {
	if li.TaxType == TaxTypePercentage {
		return sanitize(sanitize(li.Amount) * sanitize(li.Tax) / 100)
	}
	return sanitize(li.Tax)
}

// ClientInteraction records the client-facing sent/viewed/accepted/rejected
// events. Flags are monotonic: once true they never revert, and each
// timestamp is stamped exactly when its flag first becomes true.
type ClientInteraction struct {
	SentToClient    bool       `json:"sentToClient"`
	SentAt          *time.Time `json:"sentAt,omitempty"`
	ClientViewed    bool       `json:"clientViewed"`
	ViewedAt        *time.Time `json:"viewedAt,omitempty"`
	ClientAccepted  bool       `json:"clientAccepted"`
	AcceptedAt      *time.Time `json:"acceptedAt,omitempty"`
	ClientRejected  bool       `json:"clientRejected"`
	RejectedAt      *time.Time `json:"rejectedAt,omitempty"`
	AcceptedBy      string     `json:"acceptedBy,omitempty"`
	ClientSignature string     `json:"clientSignature,omitempty"`
	IPAddress       string     `json:"ipAddress,omitempty"`
}

// Estimate is the central aggregate: a project estimate with its line items
// and client-interaction sub-record.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-index): status
//
// Monetary representation:
//   - EstimatedPrice is the client-facing total, EstimatedCost the internal
//     cost. Both are overwritten from LineItems on every persist while line
//     items exist; with no line items the flat values are authoritative.
type Estimate struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Description       string            `json:"description,omitempty"`
	Building          string            `json:"building"`
	ApartmentNumber   string            `json:"apartmentNumber,omitempty"`
	EstimatedCost     float64           `json:"estimatedCost"`
	EstimatedPrice    float64           `json:"estimatedPrice"`
	EstimatedDuration int               `json:"estimatedDuration,omitempty"`
	VisitDate         *time.Time        `json:"visitDate,omitempty"`
	ProposedStartDate *time.Time        `json:"proposedStartDate,omitempty"`
	TargetYear        int               `json:"targetYear,omitempty"`
	Status            EstimateStatus    `json:"status"`
	Priority          EstimatePriority  `json:"priority"`
	Photos            []string          `json:"photos,omitempty"`
	Notes             string            `json:"notes,omitempty"`
	ClientNotes       string            `json:"clientNotes,omitempty"`
	ClientEmail       string            `json:"clientEmail,omitempty"`
	RejectionReason   string            `json:"rejectionReason,omitempty"`
	WorkOrderID       string            `json:"workOrderId,omitempty"`
	InvoiceID         string            `json:"invoiceId,omitempty"`
	LineItems         []LineItem        `json:"lineItems,omitempty"`
	ClientInteraction ClientInteraction `json:"clientInteraction"`
	CreatedBy         string            `json:"createdBy"`
	ApprovedBy        string            `json:"approvedBy,omitempty"`
	ApprovedAt        *time.Time        `json:"approvedAt,omitempty"`
	SubmittedAt       *time.Time        `json:"submittedAt,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// CalculateTotals overwrites the flat EstimatedPrice/EstimatedCost fields
// from the line items. With no line items the flat fields stay untouched.
// It never fails; undefined numeric input clamps to 0.
func (e *Estimate) CalculateTotals() {
	if len(e.LineItems) == 0 {
		e.EstimatedPrice = sanitize(e.EstimatedPrice)
		e.EstimatedCost = sanitize(e.EstimatedCost)
		return
	}

	price := 0.0
	cost := 0.0
	for _, li := range e.LineItems {
		price += sanitize(li.Amount) + li.TaxAmount()
		cost += sanitize(li.EstimatedCost)
	}
	e.EstimatedPrice = price
	e.EstimatedCost = cost
}

// EstimatedProfit is derived on read, never stored.
func (e Estimate) EstimatedProfit() float64 {
	return sanitize(e.EstimatedPrice) - sanitize(e.EstimatedCost)
}

// EstimatedProfitMargin is the profit as a percentage of price, defined as
// 0 when the price is 0.
func (e Estimate) EstimatedProfitMargin() float64 {
	price := sanitize(e.EstimatedPrice)
	if price == 0 {
		return 0
	}
	return e.EstimatedProfit() / price * 100
}

// LineItemsTotal sums amount plus applied tax across the line items,
// falling back to the flat price when no line items exist.
func (e Estimate) LineItemsTotal() float64 {
	if len(e.LineItems) == 0 {
		return sanitize(e.EstimatedPrice)
	}
	total := 0.0
	for _, li := range e.LineItems {
		total += sanitize(li.Amount) + li.TaxAmount()
	}
	return total
}

// LineItemsCost sums the internal cost across the line items, falling back
// to the flat cost when no line items exist.
func (e Estimate) LineItemsCost() float64 {
	if len(e.LineItems) == 0 {
		return sanitize(e.EstimatedCost)
	}
	cost := 0.0
	for _, li := range e.LineItems {
		cost += sanitize(li.EstimatedCost)
	}
	return cost
}

// Converted reports whether the estimate reached a terminal converted state.
func (e Estimate) Converted() bool {
	return e.Status == EstimateStatusConvertedToWorkOrder ||
		e.Status == EstimateStatusConvertedToInvoice
}

// Deletable is true while the estimate has not been converted.
func (e Estimate) Deletable() bool {
	return !e.Converted()
}

// Submit moves draft|pending to submitted. SubmittedAt and the
// sentToClient interaction flag are stamped once; re-submitting does not
// re-stamp them.
func (e *Estimate) Submit(now time.Time) error {
	if e.Status != EstimateStatusDraft && e.Status != EstimateStatusPending {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusSubmitted
	if e.SubmittedAt == nil {
		t := now
		e.SubmittedAt = &t
	}
	if !e.ClientInteraction.SentToClient {
		e.ClientInteraction.SentToClient = true
		t := now
		e.ClientInteraction.SentAt = &t
	}
	return nil
}

// MarkPending queues the estimate for human approval. Any non-converted
// status may enter the pending queue.
func (e *Estimate) MarkPending(now time.Time) error {
	if e.Converted() {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusPending
	if e.SubmittedAt == nil {
		t := now
		e.SubmittedAt = &t
	}
	return nil
}

// Approve is valid from pending only and stamps approvedBy/approvedAt once.
func (e *Estimate) Approve(actorID string, now time.Time) error {
	if e.Status != EstimateStatusPending {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusApproved
	if e.ApprovedBy == "" {
		e.ApprovedBy = actorID
	}
	if e.ApprovedAt == nil {
		t := now
		e.ApprovedAt = &t
	}
	return nil
}

// Reject is valid from pending only.
func (e *Estimate) Reject(reason string, now time.Time) error {
	if e.Status != EstimateStatusPending {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusRejected
	e.RejectionReason = reason
	return nil
}

// MarkConvertedToWorkOrder binds the work order reference. The reference is
// write-once; a second conversion attempt fails.
func (e *Estimate) MarkConvertedToWorkOrder(workOrderID string) error {
	if e.WorkOrderID != "" {
		return ErrAlreadyConverted
	}
	if e.Status != EstimateStatusApproved {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusConvertedToWorkOrder
	e.WorkOrderID = workOrderID
	return nil
}

// MarkConvertedToInvoice binds the invoice reference, write-once.
func (e *Estimate) MarkConvertedToInvoice(invoiceID string) error {
	if e.InvoiceID != "" {
		return ErrAlreadyConverted
	}
	if e.Status != EstimateStatusApproved {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusConvertedToInvoice
	e.InvoiceID = invoiceID
	return nil
}

// MarkViewed records the first client view. Repeated calls are no-ops so
// ViewedAt always reflects the first view. Returns true when state changed.
func (e *Estimate) MarkViewed(ip string, now time.Time) bool {
	if e.ClientInteraction.ClientViewed {
		return false
	}
	e.ClientInteraction.ClientViewed = true
	t := now
	e.ClientInteraction.ViewedAt = &t
	if e.ClientInteraction.IPAddress == "" {
		e.ClientInteraction.IPAddress = ip
	}
	return true
}

// AcceptByClient is the external (unauthenticated) acceptance, valid from
// pending only.
func (e *Estimate) AcceptByClient(acceptedBy, signature, ip string, now time.Time) error {
	if e.Status != EstimateStatusPending {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusClientAccepted
	if !e.ClientInteraction.ClientAccepted {
		e.ClientInteraction.ClientAccepted = true
		t := now
		e.ClientInteraction.AcceptedAt = &t
		e.ClientInteraction.AcceptedBy = acceptedBy
		e.ClientInteraction.ClientSignature = signature
	}
	if ip != "" {
		e.ClientInteraction.IPAddress = ip
	}
	return nil
}

// RejectByClient is the external rejection, valid from pending only.
func (e *Estimate) RejectByClient(reason, ip string, now time.Time) error {
	if e.Status != EstimateStatusPending {
		return ErrInvalidStatusTransition
	}
	e.Status = EstimateStatusClientRejected
	e.RejectionReason = reason
	if !e.ClientInteraction.ClientRejected {
		e.ClientInteraction.ClientRejected = true
		t := now
		e.ClientInteraction.RejectedAt = &t
	}
	if ip != "" {
		e.ClientInteraction.IPAddress = ip
	}
	return nil
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
