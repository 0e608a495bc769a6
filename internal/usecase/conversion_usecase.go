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

	"github.com/google/uuid"
)

var (
	ErrEstimateNotApproved = errors.New("estimate not approved")
	ErrAlreadyConverted    = errors.New("estimate already converted")
)

// IConversionUseCase materializes an approved estimate into a Work Order
// or an Invoice and links both sides. Each estimate converts to at most
// one of each; the reference is immutable once set.

type IConversionUseCase interface {
	ConvertToWorkOrder(ctx context.Context, estimateID string) (entities.WorkOrder, error)
	ConvertToInvoice(ctx context.Context, estimateID string) (entities.Invoice, error)
}

type ConversionUseCase struct {
	estimates   interfaces.IEstimateRepository
	conversions interfaces.IConversionRepository
	counters    interfaces.ICounterRepository
	bus         events.Bus
}

var _ IConversionUseCase = (*ConversionUseCase)(nil)

func NewConversionUseCase(
	estimates interfaces.IEstimateRepository,
	conversions interfaces.IConversionRepository,
	counters interfaces.ICounterRepository,
	bus events.Bus,
) *ConversionUseCase {
	return &ConversionUseCase{estimates: estimates, conversions: conversions, counters: counters, bus: bus}
}

func (u *ConversionUseCase) ConvertToWorkOrder(ctx context.Context, estimateID string) (entities.WorkOrder, error) {
	e, err := u.loadApproved(ctx, estimateID)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if e.WorkOrderID != "" {
		return entities.WorkOrder{}, ErrAlreadyConverted
	}

	now := time.Now().UTC()
	wo := entities.NewWorkOrderFromEstimate(uuid.NewString(), e, now)
	if err := e.MarkConvertedToWorkOrder(wo.ID); err != nil {
		return entities.WorkOrder{}, mapEntityError(err)
	}
	e.UpdatedAt = now

	// The store re-checks approved + unbound reference on the persisted
	// document, so a concurrent conversion cannot double-apply.
	if err := u.conversions.CreateWorkOrderAndLink(ctx, e, wo); err != nil {
		if errors.Is(err, interfaces.ErrConversionConflict) {
			return entities.WorkOrder{}, ErrAlreadyConverted
		}
		return entities.WorkOrder{}, err
	}
	log.Printf("[conversion][usecase] work order created estimate_id=%s work_order_id=%s", e.ID, wo.ID)

	u.publish(events.EventEstimateConvertedWO, events.EstimatePayload{
		EstimateID: e.ID, Status: string(e.Status), WorkOrderID: wo.ID,
	})
	return wo, nil
}

func (u *ConversionUseCase) ConvertToInvoice(ctx context.Context, estimateID string) (entities.Invoice, error) {
	e, err := u.loadApproved(ctx, estimateID)
	if err != nil {
		return entities.Invoice{}, err
	}
	if e.InvoiceID != "" {
		return entities.Invoice{}, ErrAlreadyConverted
	}

	now := time.Now().UTC()
	seq, err := u.counters.NextInvoiceNumber(ctx, now.Year())
	if err != nil {
		return entities.Invoice{}, err
	}

	inv := entities.NewInvoiceFromEstimate(uuid.NewString(), entities.FormatInvoiceNumber(now.Year(), seq), e, now)
	if err := e.MarkConvertedToInvoice(inv.ID); err != nil {
		return entities.Invoice{}, mapEntityError(err)
	}
	e.UpdatedAt = now

	if err := u.conversions.CreateInvoiceAndLink(ctx, e, inv); err != nil {
		if errors.Is(err, interfaces.ErrConversionConflict) {
			return entities.Invoice{}, ErrAlreadyConverted
		}
		return entities.Invoice{}, err
	}
	log.Printf("[conversion][usecase] invoice created estimate_id=%s invoice_id=%s invoice_number=%s", e.ID, inv.ID, inv.InvoiceNumber)

	u.publish(events.EventEstimateConvertedInv, events.EstimatePayload{
		EstimateID: e.ID, Status: string(e.Status), InvoiceID: inv.ID,
	})
	return inv, nil
}

func (u *ConversionUseCase) loadApproved(ctx context.Context, estimateID string) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.estimates.GetByID(ctx, estimateID)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	if e.Converted() {
		return entities.Estimate{}, ErrAlreadyConverted
	}
	if e.Status != entities.EstimateStatusApproved {
		return entities.Estimate{}, ErrEstimateNotApproved
	}
	return e, nil
}

func (u *ConversionUseCase) publish(event string, payload events.EstimatePayload) {
	if u.bus != nil {
		u.bus.Publish(event, payload)
	}
}
