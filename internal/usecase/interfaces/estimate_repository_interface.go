package interfaces

import (
	"context"

	"propserv/internal/domain/entities"
)

// EstimateFilter narrows List results. Zero values mean "no filter".
// Cursor is the opaque pagination token returned by the previous page.
type EstimateFilter struct {
	Status   entities.EstimateStatus
	Priority entities.EstimatePriority
	Building string
	Limit    int32
	Cursor   string
}

// EstimatePage is one page of estimates plus the cursor for the next one.
// An empty NextCursor means the listing is exhausted.
type EstimatePage struct {
	Items      []entities.Estimate
	NextCursor string
}

// IEstimateRepository abstracts DynamoDB persistence for Estimate.
//
// Repositories return a zero-value entity (empty ID) for "not found";
// usecases translate that into their sentinel errors. Updates replace the
// whole document — no sub-document locking exists.

type IEstimateRepository interface {
	Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	Update(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter EstimateFilter) (EstimatePage, error)
	ListPendingApprovals(ctx context.Context) ([]entities.Estimate, error)
}
