package interfaces

import (
	"context"
	"io"

	"propserv/internal/domain/entities"
)

// IPhotoStorage stores estimate photo attachments. The core only keeps the
// returned URL strings; objects are purged when the estimate is deleted.
type IPhotoStorage interface {
	Save(ctx context.Context, estimateID, filename, contentType string, body io.Reader) (url string, err error)
	Delete(ctx context.Context, url string) error
}

// IPDFRenderer produces a read-only PDF projection of an estimate
// snapshot. The internal variant includes cost and class columns that the
// client-facing one omits.
type IPDFRenderer interface {
	RenderEstimate(ctx context.Context, e entities.Estimate, internal bool) ([]byte, error)
}

// IClientNotifier delivers the portal link to the client on submit. The
// mail transport itself lives behind this boundary.
type IClientNotifier interface {
	SendEstimateToClient(ctx context.Context, e entities.Estimate, email string) error
}
