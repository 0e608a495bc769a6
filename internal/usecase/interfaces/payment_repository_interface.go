package interfaces

import (
	"context"

	"propserv/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for ClientPayment.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.ClientPayment) (entities.ClientPayment, error)
	GetByID(ctx context.Context, id string) (entities.ClientPayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.ClientPayment, error)
}
