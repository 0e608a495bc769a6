package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/events"
	"propserv/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEstimateNotFound       = errors.New("estimate not found")
	ErrInvalidEstimateID      = errors.New("invalid estimate id")
	ErrInvalidEstimateInput   = errors.New("invalid estimate input")
	ErrInvalidLineItem        = errors.New("invalid line item")
	ErrMissingClientEmail     = errors.New("client email is required")
	ErrMissingRejectionReason = errors.New("rejection reason is required")
	ErrMissingActor           = errors.New("acting user is required")
	ErrEstimateNotDeletable   = errors.New("estimate cannot be deleted after conversion")
	ErrInvalidTransition      = errors.New("invalid status transition")
)

// EstimateInput carries the author-editable fields for create/update.
// Status is never part of it: lifecycle transitions go through their own
// operations.
type EstimateInput struct {
	Title             string
	Description       string
	Building          string
	ApartmentNumber   string
	EstimatedCost     float64
	EstimatedPrice    float64
	EstimatedDuration int
	VisitDate         *time.Time
	ProposedStartDate *time.Time
	TargetYear        int
	Priority          entities.EstimatePriority
	Notes             string
	ClientNotes       string
	LineItems         []entities.LineItem
}

// IEstimateUseCase exposes the authenticated estimate operations: CRUD,
// totals recalculation, the lifecycle transitions that require an actor,
// photo attachment and the PDF projection.

type IEstimateUseCase interface {
	Create(ctx context.Context, actorID string, in EstimateInput) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	List(ctx context.Context, filter interfaces.EstimateFilter) (interfaces.EstimatePage, error)
	ListPendingApprovals(ctx context.Context) ([]entities.Estimate, error)
	Update(ctx context.Context, id string, in EstimateInput) (entities.Estimate, error)
	Delete(ctx context.Context, id string) error
	Submit(ctx context.Context, id, clientEmail string) (entities.Estimate, error)
	MarkPending(ctx context.Context, id string) (entities.Estimate, error)
	Approve(ctx context.Context, id, actorID string) (entities.Estimate, error)
	Reject(ctx context.Context, id, reason string) (entities.Estimate, error)
	RecalculateTotals(ctx context.Context, id string) (entities.Estimate, error)
	AttachPhoto(ctx context.Context, id, filename, contentType string, body io.Reader) (entities.Estimate, error)
	RenderPDF(ctx context.Context, id string, internal bool) ([]byte, error)
}

type EstimateUseCase struct {
	repo     interfaces.IEstimateRepository
	photos   interfaces.IPhotoStorage
	pdf      interfaces.IPDFRenderer
	notifier interfaces.IClientNotifier
	bus      events.Bus
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(
	repo interfaces.IEstimateRepository,
	photos interfaces.IPhotoStorage,
	pdf interfaces.IPDFRenderer,
	notifier interfaces.IClientNotifier,
	bus events.Bus,
) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, photos: photos, pdf: pdf, notifier: notifier, bus: bus}
}

func (u *EstimateUseCase) Create(ctx context.Context, actorID string, in EstimateInput) (entities.Estimate, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return entities.Estimate{}, ErrMissingActor
	}
	if err := validateInput(in); err != nil {
		return entities.Estimate{}, err
	}

	now := time.Now().UTC()
	e := entities.Estimate{
		ID:                uuid.NewString(),
		Title:             strings.TrimSpace(in.Title),
		Description:       in.Description,
		Building:          strings.TrimSpace(in.Building),
		ApartmentNumber:   in.ApartmentNumber,
		EstimatedCost:     in.EstimatedCost,
		EstimatedPrice:    in.EstimatedPrice,
		EstimatedDuration: in.EstimatedDuration,
		VisitDate:         in.VisitDate,
		ProposedStartDate: in.ProposedStartDate,
		TargetYear:        in.TargetYear,
		Status:            entities.EstimateStatusDraft,
		Priority:          priorityOrDefault(in.Priority),
		Notes:             in.Notes,
		ClientNotes:       in.ClientNotes,
		LineItems:         in.LineItems,
		CreatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	e.CalculateTotals()
	return u.repo.Create(ctx, e)
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	return u.load(ctx, id)
}

func (u *EstimateUseCase) List(ctx context.Context, filter interfaces.EstimateFilter) (interfaces.EstimatePage, error) {
	return u.repo.List(ctx, filter)
}

// ListPendingApprovals is the approval queue: pending estimates, oldest
// submission first.
func (u *EstimateUseCase) ListPendingApprovals(ctx context.Context) ([]entities.Estimate, error) {
	return u.repo.ListPendingApprovals(ctx)
}

func (u *EstimateUseCase) Update(ctx context.Context, id string, in EstimateInput) (entities.Estimate, error) {
	if err := validateInput(in); err != nil {
		return entities.Estimate{}, err
	}
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Converted() {
		return entities.Estimate{}, ErrInvalidTransition
	}

	e.Title = strings.TrimSpace(in.Title)
	e.Description = in.Description
	e.Building = strings.TrimSpace(in.Building)
	e.ApartmentNumber = in.ApartmentNumber
	e.EstimatedDuration = in.EstimatedDuration
	e.VisitDate = in.VisitDate
	e.ProposedStartDate = in.ProposedStartDate
	e.TargetYear = in.TargetYear
	e.Priority = priorityOrDefault(in.Priority)
	e.Notes = in.Notes
	e.ClientNotes = in.ClientNotes
	e.LineItems = in.LineItems
	if len(in.LineItems) == 0 {
		e.EstimatedCost = in.EstimatedCost
		e.EstimatedPrice = in.EstimatedPrice
	}
	return u.persist(ctx, e)
}

// Delete removes a not-yet-converted estimate and purges its photo
// objects. Converted estimates are immutable and cannot be deleted.
func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	e, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if !e.Deletable() {
		return ErrEstimateNotDeletable
	}

	for _, url := range e.Photos {
		if err := u.photos.Delete(ctx, url); err != nil {
			log.Printf("[estimate][usecase] photo purge failed estimate_id=%s url=%s err=%v", e.ID, url, err)
		}
	}

	deleted, err := u.repo.Delete(ctx, e.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEstimateNotFound
	}
	return nil
}

// Submit sends the estimate to the client. The email is used purely for
// the send action; delivery failures do not roll the transition back.
func (u *EstimateUseCase) Submit(ctx context.Context, id, clientEmail string) (entities.Estimate, error) {
	clientEmail = strings.TrimSpace(clientEmail)
	if clientEmail == "" {
		return entities.Estimate{}, ErrMissingClientEmail
	}
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := e.Submit(time.Now().UTC()); err != nil {
		return entities.Estimate{}, mapEntityError(err)
	}
	e.ClientEmail = clientEmail

	saved, err := u.persist(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}

	if u.notifier != nil {
		if err := u.notifier.SendEstimateToClient(ctx, saved, clientEmail); err != nil {
			log.Printf("[estimate][usecase] client notification failed estimate_id=%s err=%v", saved.ID, err)
		}
	}
	u.publish(events.EventEstimateSubmitted, events.EstimatePayload{EstimateID: saved.ID, Status: string(saved.Status)})
	return saved, nil
}

func (u *EstimateUseCase) MarkPending(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := e.MarkPending(time.Now().UTC()); err != nil {
		return entities.Estimate{}, mapEntityError(err)
	}
	return u.persist(ctx, e)
}

func (u *EstimateUseCase) Approve(ctx context.Context, id, actorID string) (entities.Estimate, error) {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return entities.Estimate{}, ErrMissingActor
	}
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := e.Approve(actorID, time.Now().UTC()); err != nil {
		return entities.Estimate{}, mapEntityError(err)
	}
	saved, err := u.persist(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.publish(events.EventEstimateApproved, events.EstimatePayload{EstimateID: saved.ID, Status: string(saved.Status), ActorID: actorID})
	return saved, nil
}

func (u *EstimateUseCase) Reject(ctx context.Context, id, reason string) (entities.Estimate, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Estimate{}, ErrMissingRejectionReason
	}
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if err := e.Reject(reason, time.Now().UTC()); err != nil {
		return entities.Estimate{}, mapEntityError(err)
	}
	saved, err := u.persist(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	u.publish(events.EventEstimateRejected, events.EstimatePayload{EstimateID: saved.ID, Status: string(saved.Status), Reason: reason})
	return saved, nil
}

// RecalculateTotals refreshes the stored flat totals for callers that
// mutate line items directly. The same computation also runs inside every
// persist, so this is only needed to obtain fresh derived values.
func (u *EstimateUseCase) RecalculateTotals(ctx context.Context, id string) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.persist(ctx, e)
}

func (u *EstimateUseCase) AttachPhoto(ctx context.Context, id, filename, contentType string, body io.Reader) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.Converted() {
		return entities.Estimate{}, ErrInvalidTransition
	}

	url, err := u.photos.Save(ctx, e.ID, filename, contentType, body)
	if err != nil {
		return entities.Estimate{}, err
	}
	e.Photos = append(e.Photos, url)
	return u.persist(ctx, e)
}

func (u *EstimateUseCase) RenderPDF(ctx context.Context, id string, internal bool) ([]byte, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.pdf.RenderEstimate(ctx, e, internal)
}

func (u *EstimateUseCase) load(ctx context.Context, id string) (entities.Estimate, error) {
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

// persist is the single write path: totals are recomputed before every
// save, so callers never depend on invoking the calculator explicitly.
// The repository reports a vanished document (deleted between load and
// save) as a zero value, which surfaces here as not-found.
func (u *EstimateUseCase) persist(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	e.CalculateTotals()
	e.UpdatedAt = time.Now().UTC()
	saved, err := u.repo.Update(ctx, e)
	if err != nil {
		return entities.Estimate{}, err
	}
	if saved.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return saved, nil
}

func (u *EstimateUseCase) publish(event string, payload events.EstimatePayload) {
	if u.bus != nil {
		u.bus.Publish(event, payload)
	}
}

func validateInput(in EstimateInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Building) == "" {
		return ErrInvalidEstimateInput
	}
	for _, li := range in.LineItems {
		if li.Qty < 0.01 || li.Amount < 0 || li.Rate < 0 {
			return ErrInvalidLineItem
		}
	}
	return nil
}

func priorityOrDefault(p entities.EstimatePriority) entities.EstimatePriority {
	switch p {
	case entities.PriorityLow, entities.PriorityMedium, entities.PriorityHigh, entities.PriorityUrgent:
		return p
	}
	return entities.PriorityMedium
}

func mapEntityError(err error) error {
	switch {
	case errors.Is(err, entities.ErrInvalidStatusTransition):
		return ErrInvalidTransition
	case errors.Is(err, entities.ErrAlreadyConverted):
		return ErrAlreadyConverted
	}
	return err
}
