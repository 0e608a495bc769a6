package request

import (
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase"
)

type LineItemRequest struct {
	ServiceDate    *time.Time `json:"serviceDate,omitempty"`
	ProductService string     `json:"productService" binding:"required"`
	Description    string     `json:"description"`
	Qty            float64    `json:"qty" binding:"required"`
	Rate           float64    `json:"rate"`
	Amount         float64    `json:"amount"`
	Tax            float64    `json:"tax"`
	TaxType        string     `json:"taxType"`
	EstimatedCost  float64    `json:"estimatedCost"`
	Notes          string     `json:"notes"`
	Class          string     `json:"class"`
}

// EstimateRequest is the create/update payload. Status is absent on
// purpose: lifecycle transitions have their own routes.
type EstimateRequest struct {
	Title             string            `json:"title" binding:"required"`
	Description       string            `json:"description"`
	Building          string            `json:"building" binding:"required"`
	ApartmentNumber   string            `json:"apartmentNumber"`
	EstimatedCost     float64           `json:"estimatedCost"`
	EstimatedPrice    float64           `json:"estimatedPrice"`
	EstimatedDuration int               `json:"estimatedDuration"`
	VisitDate         *time.Time        `json:"visitDate"`
	ProposedStartDate *time.Time        `json:"proposedStartDate"`
	TargetYear        int               `json:"targetYear"`
	Priority          string            `json:"priority"`
	Notes             string            `json:"notes"`
	ClientNotes       string            `json:"clientNotes"`
	LineItems         []LineItemRequest `json:"lineItems"`
}

func (r EstimateRequest) ToInput() usecase.EstimateInput {
	items := make([]entities.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		items = append(items, entities.LineItem{
			ServiceDate:    li.ServiceDate,
			ProductService: li.ProductService,
			Description:    li.Description,
			Qty:            li.Qty,
			Rate:           li.Rate,
			Amount:         li.Amount,
			Tax:            li.Tax,
			TaxType:        entities.TaxType(li.TaxType),
			EstimatedCost:  li.EstimatedCost,
			Notes:          li.Notes,
			Class:          li.Class,
		})
	}
	if len(items) == 0 {
		items = nil
	}
	return usecase.EstimateInput{
		Title:             r.Title,
		Description:       r.Description,
		Building:          r.Building,
		ApartmentNumber:   r.ApartmentNumber,
		EstimatedCost:     r.EstimatedCost,
		EstimatedPrice:    r.EstimatedPrice,
		EstimatedDuration: r.EstimatedDuration,
		VisitDate:         r.VisitDate,
		ProposedStartDate: r.ProposedStartDate,
		TargetYear:        r.TargetYear,
		Priority:          entities.EstimatePriority(r.Priority),
		Notes:             r.Notes,
		ClientNotes:       r.ClientNotes,
		LineItems:         items,
	}
}

type SubmitRequest struct {
	ClientEmail string `json:"clientEmail" binding:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ClientAcceptRequest is the unauthenticated portal acceptance payload.
type ClientAcceptRequest struct {
	AcceptedBy      string `json:"acceptedBy" binding:"required"`
	ClientSignature string `json:"clientSignature"`
}

// ClientRejectRequest is the unauthenticated portal rejection payload.
type ClientRejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}
