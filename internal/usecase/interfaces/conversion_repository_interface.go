package interfaces

import (
	"context"
	"errors"

	"propserv/internal/domain/entities"
)

// ErrConversionConflict is returned when the transactional conversion
// condition fails on the stored estimate: it is no longer approved, or the
// cross-reference was already bound by a concurrent conversion.
var ErrConversionConflict = errors.New("conversion precondition failed")

// IConversionRepository commits a conversion atomically: the new record's
// Put and the estimate's status/link update succeed or fail together. The
// estimate passed in already carries the terminal status and reference; the
// store-side condition re-checks the persisted document, so a stale read
// snapshot cannot produce a double conversion.

type IConversionRepository interface {
	CreateWorkOrderAndLink(ctx context.Context, e entities.Estimate, wo entities.WorkOrder) error
	CreateInvoiceAndLink(ctx context.Context, e entities.Estimate, inv entities.Invoice) error
}

// ICounterRepository allocates sequential, year-scoped invoice numbers via
// a single atomic increment-and-read — never a read-then-write pair.

type ICounterRepository interface {
	NextInvoiceNumber(ctx context.Context, year int) (int64, error)
}
