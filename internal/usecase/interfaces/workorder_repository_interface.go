package interfaces

import (
	"context"

	"propserv/internal/domain/entities"
)

// IWorkOrderRepository abstracts DynamoDB persistence for WorkOrder.
// Creation happens only inside the conversion transaction
// (IConversionRepository); this port is read-side plus reconciliation.

type IWorkOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.WorkOrder, error)
	GetByEstimateID(ctx context.Context, estimateID string) (entities.WorkOrder, error)
	ListAll(ctx context.Context) ([]entities.WorkOrder, error)
}
