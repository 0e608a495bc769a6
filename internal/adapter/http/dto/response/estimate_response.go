package response

import (
	"time"

	"propserv/internal/domain/entities"
)

type LineItemResponse struct {
	ServiceDate    *time.Time `json:"serviceDate,omitempty"`
	ProductService string     `json:"productService"`
	Description    string     `json:"description,omitempty"`
	Qty            float64    `json:"qty"`
	Rate           float64    `json:"rate"`
	Amount         float64    `json:"amount"`
	Tax            float64    `json:"tax"`
	TaxType        string     `json:"taxType,omitempty"`
	EstimatedCost  float64    `json:"estimatedCost"`
	Notes          string     `json:"notes,omitempty"`
	Class          string     `json:"class,omitempty"`
}

type ClientInteractionResponse struct {
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

type EstimateResponse struct {
	ID                    string                    `json:"id"`
	Title                 string                    `json:"title"`
	Description           string                    `json:"description,omitempty"`
	Building              string                    `json:"building"`
	ApartmentNumber       string                    `json:"apartmentNumber,omitempty"`
	EstimatedCost         float64                   `json:"estimatedCost"`
	EstimatedPrice        float64                   `json:"estimatedPrice"`
	EstimatedProfit       float64                   `json:"estimatedProfit"`
	EstimatedProfitMargin float64                   `json:"estimatedProfitMargin"`
	EstimatedDuration     int                       `json:"estimatedDuration,omitempty"`
	VisitDate             *time.Time                `json:"visitDate,omitempty"`
	ProposedStartDate     *time.Time                `json:"proposedStartDate,omitempty"`
	TargetYear            int                       `json:"targetYear,omitempty"`
	Status                string                    `json:"status"`
	Priority              string                    `json:"priority"`
	Photos                []string                  `json:"photos,omitempty"`
	Notes                 string                    `json:"notes,omitempty"`
	ClientNotes           string                    `json:"clientNotes,omitempty"`
	ClientEmail           string                    `json:"clientEmail,omitempty"`
	RejectionReason       string                    `json:"rejectionReason,omitempty"`
	WorkOrderID           string                    `json:"workOrderId,omitempty"`
	InvoiceID             string                    `json:"invoiceId,omitempty"`
	LineItems             []LineItemResponse        `json:"lineItems,omitempty"`
	ClientInteraction     ClientInteractionResponse `json:"clientInteraction"`
	CreatedBy             string                    `json:"createdBy"`
	ApprovedBy            string                    `json:"approvedBy,omitempty"`
	ApprovedAt            *time.Time                `json:"approvedAt,omitempty"`
	SubmittedAt           *time.Time                `json:"submittedAt,omitempty"`
	CreatedAt             time.Time                 `json:"created_at"`
	UpdatedAt             time.Time                 `json:"updated_at"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	items := make([]LineItemResponse, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		items = append(items, LineItemResponse{
			ServiceDate:    li.ServiceDate,
			ProductService: li.ProductService,
			Description:    li.Description,
			Qty:            li.Qty,
			Rate:           li.Rate,
			Amount:         li.Amount,
			Tax:            li.Tax,
			TaxType:        string(li.TaxType),
			EstimatedCost:  li.EstimatedCost,
			Notes:          li.Notes,
			Class:          li.Class,
		})
	}
	if len(items) == 0 {
		items = nil
	}

	return EstimateResponse{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		Building:              e.Building,
		ApartmentNumber:       e.ApartmentNumber,
		EstimatedCost:         e.EstimatedCost,
		EstimatedPrice:        e.EstimatedPrice,
		EstimatedProfit:       e.EstimatedProfit(),
		EstimatedProfitMargin: e.EstimatedProfitMargin(),
		EstimatedDuration:     e.EstimatedDuration,
		VisitDate:             e.VisitDate,
		ProposedStartDate:     e.ProposedStartDate,
		TargetYear:            e.TargetYear,
		Status:                string(e.Status),
		Priority:              string(e.Priority),
		Photos:                e.Photos,
		Notes:                 e.Notes,
		ClientNotes:           e.ClientNotes,
		ClientEmail:           e.ClientEmail,
		RejectionReason:       e.RejectionReason,
		WorkOrderID:           e.WorkOrderID,
		InvoiceID:             e.InvoiceID,
		LineItems:             items,
		ClientInteraction:     fromClientInteraction(e.ClientInteraction),
		CreatedBy:             e.CreatedBy,
		ApprovedBy:            e.ApprovedBy,
		ApprovedAt:            e.ApprovedAt,
		SubmittedAt:           e.SubmittedAt,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

// EstimateTotalsResponse is the money-only projection of an estimate.
type EstimateTotalsResponse struct {
	EstimatedPrice        float64 `json:"estimatedPrice"`
	EstimatedCost         float64 `json:"estimatedCost"`
	EstimatedProfit       float64 `json:"estimatedProfit"`
	EstimatedProfitMargin float64 `json:"estimatedProfitMargin"`
}

func FromEstimateTotals(e entities.Estimate) EstimateTotalsResponse {
	return EstimateTotalsResponse{
		EstimatedPrice:        e.EstimatedPrice,
		EstimatedCost:         e.EstimatedCost,
		EstimatedProfit:       e.EstimatedProfit(),
		EstimatedProfitMargin: e.EstimatedProfitMargin(),
	}
}

type EstimateListResponse struct {
	Items      []EstimateResponse `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

// ClientLineItemResponse is the portal view of a line: the internal cost
// and class columns never leave the building.
type ClientLineItemResponse struct {
	ServiceDate    *time.Time `json:"serviceDate,omitempty"`
	ProductService string     `json:"productService"`
	Description    string     `json:"description,omitempty"`
	Qty            float64    `json:"qty"`
	Rate           float64    `json:"rate"`
	Amount         float64    `json:"amount"`
	Tax            float64    `json:"tax"`
	TaxType        string     `json:"taxType,omitempty"`
}

// ClientEstimateResponse is the sanitized portal projection: no internal
// cost, profit, class, internal notes, or author identity.
type ClientEstimateResponse struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Description       string                    `json:"description,omitempty"`
	Building          string                    `json:"building"`
	ApartmentNumber   string                    `json:"apartmentNumber,omitempty"`
	EstimatedPrice    float64                   `json:"estimatedPrice"`
	EstimatedDuration int                       `json:"estimatedDuration,omitempty"`
	ProposedStartDate *time.Time                `json:"proposedStartDate,omitempty"`
	Status            string                    `json:"status"`
	Photos            []string                  `json:"photos,omitempty"`
	ClientNotes       string                    `json:"clientNotes,omitempty"`
	LineItems         []ClientLineItemResponse  `json:"lineItems,omitempty"`
	ClientInteraction ClientInteractionResponse `json:"clientInteraction"`
	CreatedAt         time.Time                 `json:"created_at"`
}

func FromEstimateClientView(e entities.Estimate) ClientEstimateResponse {
	items := make([]ClientLineItemResponse, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		items = append(items, ClientLineItemResponse{
			ServiceDate:    li.ServiceDate,
			ProductService: li.ProductService,
			Description:    li.Description,
			Qty:            li.Qty,
			Rate:           li.Rate,
			Amount:         li.Amount,
			Tax:            li.Tax,
			TaxType:        string(li.TaxType),
		})
	}
	if len(items) == 0 {
		items = nil
	}

	return ClientEstimateResponse{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		Building:          e.Building,
		ApartmentNumber:   e.ApartmentNumber,
		EstimatedPrice:    e.EstimatedPrice,
		EstimatedDuration: e.EstimatedDuration,
		ProposedStartDate: e.ProposedStartDate,
		Status:            string(e.Status),
		Photos:            e.Photos,
		ClientNotes:       e.ClientNotes,
		LineItems:         items,
		ClientInteraction: fromClientInteraction(e.ClientInteraction),
		CreatedAt:         e.CreatedAt,
	}
}

func fromClientInteraction(ci entities.ClientInteraction) ClientInteractionResponse {
	return ClientInteractionResponse{
		SentToClient:    ci.SentToClient,
		SentAt:          ci.SentAt,
		ClientViewed:    ci.ClientViewed,
		ViewedAt:        ci.ViewedAt,
		ClientAccepted:  ci.ClientAccepted,
		AcceptedAt:      ci.AcceptedAt,
		ClientRejected:  ci.ClientRejected,
		RejectedAt:      ci.RejectedAt,
		AcceptedBy:      ci.AcceptedBy,
		ClientSignature: ci.ClientSignature,
		IPAddress:       ci.IPAddress,
	}
}
