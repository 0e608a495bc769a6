package entities

import "time"

// WorkOrderStatus mirrors the work-order collaborator's own lifecycle. The
// billing core only ever sets the initial pending value at conversion time.

type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
)

// WorkOrder is materialized from an approved estimate. It copies the
// descriptive and financial snapshot so later estimate edits (there are
// none past conversion, but repairs may rewrite documents) never change a
// dispatched order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (estimate_id-index): estimate_id
type WorkOrder struct {
	ID              string          `json:"id"`
	EstimateID      string          `json:"estimateId"`
	Title           string          `json:"title"`
	Description     string          `json:"description,omitempty"`
	Building        string          `json:"building"`
	ApartmentNumber string          `json:"apartmentNumber,omitempty"`
	EstimatedCost   float64         `json:"estimatedCost"`
	Price           float64         `json:"price"`
	ScheduledDate   time.Time       `json:"scheduledDate"`
	Photos          []string        `json:"photos,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          WorkOrderStatus `json:"status"`
	CreatedBy       string          `json:"createdBy,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewWorkOrderFromEstimate builds the conversion payload. ScheduledDate is
// the proposed start date when present, else now.
func NewWorkOrderFromEstimate(id string, e Estimate, now time.Time) WorkOrder {
	scheduled := now
	if e.ProposedStartDate != nil {
		scheduled = *e.ProposedStartDate
	}
	return WorkOrder{
		ID:              id,
		EstimateID:      e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Building:        e.Building,
		ApartmentNumber: e.ApartmentNumber,
		EstimatedCost:   e.EstimatedCost,
		Price:           e.EstimatedPrice,
		ScheduledDate:   scheduled,
		Photos:          e.Photos,
		Notes:           e.Notes,
		Status:          WorkOrderStatusPending,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
