package events

// Estimate lifecycle event types published on the in-process bus.
const (
	EventEstimateSubmitted      = "estimate_submitted"
	EventEstimateApproved       = "estimate_approved"
	EventEstimateRejected       = "estimate_rejected"
	EventEstimateClientAccepted = "estimate_client_accepted"
	EventEstimateClientRejected = "estimate_client_rejected"
	EventEstimateConvertedWO    = "estimate_converted_to_workorder"
	EventEstimateConvertedInv   = "estimate_converted_to_invoice"
	EventInvoicePaymentSettled  = "invoice_payment_settled"
)

// EstimatePayload captures the minimal data subscribers need for estimate
// lifecycle events.
type EstimatePayload struct {
	EstimateID  string `json:"estimate_id"`
	Status      string `json:"status"`
	ActorID     string `json:"actor_id,omitempty"`
	WorkOrderID string `json:"work_order_id,omitempty"`
	InvoiceID   string `json:"invoice_id,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// PaymentPayload captures the minimal data for payment events.
type PaymentPayload struct {
	PaymentID string `json:"payment_id"`
	InvoiceID string `json:"invoice_id"`
	Status    string `json:"status"`
}
