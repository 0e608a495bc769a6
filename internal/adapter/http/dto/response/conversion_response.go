package response

import (
	"time"

	"propserv/internal/domain/entities"
)

type WorkOrderResponse struct {
	ID              string    `json:"id"`
	EstimateID      string    `json:"estimateId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Building        string    `json:"building"`
	ApartmentNumber string    `json:"apartmentNumber,omitempty"`
	EstimatedCost   float64   `json:"estimatedCost"`
	Price           float64   `json:"price"`
	ScheduledDate   time.Time `json:"scheduledDate"`
	Photos          []string  `json:"photos,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromWorkOrder(wo entities.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:              wo.ID,
		EstimateID:      wo.EstimateID,
		Title:           wo.Title,
		Description:     wo.Description,
		Building:        wo.Building,
		ApartmentNumber: wo.ApartmentNumber,
		EstimatedCost:   wo.EstimatedCost,
		Price:           wo.Price,
		ScheduledDate:   wo.ScheduledDate,
		Photos:          wo.Photos,
		Notes:           wo.Notes,
		Status:          string(wo.Status),
		CreatedAt:       wo.CreatedAt,
	}
}

type InvoiceLineItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type InvoiceResponse struct {
	ID              string                    `json:"id"`
	InvoiceNumber   string                    `json:"invoiceNumber"`
	EstimateID      string                    `json:"estimateId"`
	Building        string                    `json:"building"`
	ApartmentNumber string                    `json:"apartmentNumber,omitempty"`
	LineItems       []InvoiceLineItemResponse `json:"lineItems"`
	Total           float64                   `json:"total"`
	IssueDate       time.Time                 `json:"issueDate"`
	DueDate         time.Time                 `json:"dueDate"`
	Notes           string                    `json:"notes,omitempty"`
	Status          string                    `json:"status"`
	CreatedAt       time.Time                 `json:"created_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	items := make([]InvoiceLineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, InvoiceLineItemResponse{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount,
		})
	}
	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		EstimateID:      inv.EstimateID,
		Building:        inv.Building,
		ApartmentNumber: inv.ApartmentNumber,
		LineItems:       items,
		Total:           inv.Total(),
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		Notes:           inv.Notes,
		Status:          string(inv.Status),
		CreatedAt:       inv.CreatedAt,
	}
}
