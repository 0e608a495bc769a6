package interfaces

import (
	"context"

	"propserv/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice. As with
// work orders, creation happens inside the conversion transaction;
// UpdateLineItems exists for the reconciliation pass, which re-derives
// missing lines from the estimate side.

type IInvoiceRepository interface {
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	GetByEstimateID(ctx context.Context, estimateID string) (entities.Invoice, error)
	ListAll(ctx context.Context) ([]entities.Invoice, error)
	UpdateLineItems(ctx context.Context, id string, lineItems []entities.InvoiceLineItem) (entities.Invoice, error)
}
