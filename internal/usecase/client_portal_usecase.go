package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/events"
	"propserv/internal/usecase/interfaces"
)

var (
	ErrClientActionNotAllowed = errors.New("client action not allowed in current status")
	ErrMissingAcceptedBy      = errors.New("acceptedBy is required")
	ErrMissingClientReason    = errors.New("client rejection reason is required")
)

// ClientAcceptInput is the payload of the external acceptance touchpoint.
type ClientAcceptInput struct {
	AcceptedBy      string
	ClientSignature string
	IPAddress       string
}

// ClientRejectInput is the payload of the external rejection touchpoint.
type ClientRejectInput struct {
	Reason    string
	IPAddress string
}

// IClientPortalUseCase exposes the operations reachable without an
// authenticated session: the client views, accepts, or rejects an estimate
// that was sent to them.

type IClientPortalUseCase interface {
	GetClientView(ctx context.Context, estimateID string) (entities.Estimate, error)
	MarkViewed(ctx context.Context, estimateID, ip string) (entities.Estimate, error)
	Accept(ctx context.Context, estimateID string, in ClientAcceptInput) (entities.Estimate, error)
	Reject(ctx context.Context, estimateID string, in ClientRejectInput) (entities.Estimate, error)
}

type ClientPortalUseCase struct {
	repo interfaces.IEstimateRepository
	bus  events.Bus
}

var _ IClientPortalUseCase = (*ClientPortalUseCase)(nil)

func NewClientPortalUseCase(repo interfaces.IEstimateRepository, bus events.Bus) *ClientPortalUseCase {
	return &ClientPortalUseCase{repo: repo, bus: bus}
}

func (u *ClientPortalUseCase) GetClientView(ctx context.Context, estimateID string) (entities.Estimate, error) {
	return u.load(ctx, estimateID)
}

// MarkViewed stamps the first view and is a strict no-op afterwards: no
// write happens on repeated calls, so viewedAt never moves.
func (u *ClientPortalUseCase) MarkViewed(ctx context.Context, estimateID, ip string) (entities.Estimate, error) {
	e, err := u.load(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if !e.MarkViewed(ip, time.Now().UTC()) {
		return e, nil
	}
	e.UpdatedAt = time.Now().UTC()
	return u.repo.Update(ctx, e)
}

func (u *ClientPortalUseCase) Accept(ctx context.Context, estimateID string, in ClientAcceptInput) (entities.Estimate, error) {
	if strings.TrimSpace(in.AcceptedBy) == "" {
		return entities.Estimate{}, ErrMissingAcceptedBy
	}
	e, err := u.load(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := e.AcceptByClient(strings.TrimSpace(in.AcceptedBy), in.ClientSignature, in.IPAddress, time.Now().UTC()); err != nil {
		return entities.Estimate{}, ErrClientActionNotAllowed
	}
	e.UpdatedAt = time.Now().UTC()
	saved, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	log.Printf("[portal][usecase] client accepted estimate_id=%s ip=%s", saved.ID, in.IPAddress)
	u.publish(events.EventEstimateClientAccepted, events.EstimatePayload{EstimateID: saved.ID, Status: string(saved.Status)})
	return saved, nil
}

func (u *ClientPortalUseCase) Reject(ctx context.Context, estimateID string, in ClientRejectInput) (entities.Estimate, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return entities.Estimate{}, ErrMissingClientReason
	}
	e, err := u.load(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := e.RejectByClient(reason, in.IPAddress, time.Now().UTC()); err != nil {
		return entities.Estimate{}, ErrClientActionNotAllowed
	}
	e.UpdatedAt = time.Now().UTC()
	saved, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	log.Printf("[portal][usecase] client rejected estimate_id=%s ip=%s", saved.ID, in.IPAddress)
	u.publish(events.EventEstimateClientRejected, events.EstimatePayload{EstimateID: saved.ID, Status: string(saved.Status), Reason: reason})
	return saved, nil
}

func (u *ClientPortalUseCase) load(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *ClientPortalUseCase) publish(event string, payload events.EstimatePayload) {
	if u.bus != nil {
		u.bus.Publish(event, payload)
	}
}
