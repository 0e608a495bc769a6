package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/events"
	"propserv/internal/usecase/interfaces"
)

var (
	ErrPaymentNotFound            = errors.New("payment not found")
	ErrInvalidPaymentInvoiceID    = errors.New("invalid invoice_id")
	ErrInvalidMPPayload           = errors.New("invalid mercado pago payload")
	ErrInvoiceNotFound            = errors.New("invoice not found")
	ErrInvoiceNotPayable          = errors.New("invoice not payable")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// IInvoicePaymentUseCase encapsulates "create and settle a payment against
// a converted invoice". The payment amount is always the invoice total;
// the caller-provided payload only carries provider specifics.

type IInvoicePaymentUseCase interface {
	CreateAndSettle(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.ClientPayment, error)
	GetByID(ctx context.Context, id string) (entities.ClientPayment, error)
	ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.ClientPayment, error)
}

type InvoicePaymentUseCase struct {
	repo     interfaces.IPaymentRepository
	invoices interfaces.IInvoiceRepository
	gateway  interfaces.IPaymentGateway
	bus      events.Bus
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

func NewInvoicePaymentUseCase(
	repo interfaces.IPaymentRepository,
	invoices interfaces.IInvoiceRepository,
	gateway interfaces.IPaymentGateway,
	bus events.Bus,
) *InvoicePaymentUseCase {
	return &InvoicePaymentUseCase{repo: repo, invoices: invoices, gateway: gateway, bus: bus}
}

func (u *InvoicePaymentUseCase) CreateAndSettle(ctx context.Context, invoiceID string, mpPayload json.RawMessage) (entities.ClientPayment, error) {
	log.Printf("[payment][usecase] create-and-settle start raw_invoice_id=%q payload_len=%d", invoiceID, len(mpPayload))
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return entities.ClientPayment{}, ErrInvalidPaymentInvoiceID
	}
	mockMode := isPaymentGatewayMockEnabled()
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.Printf("[payment][usecase] invalid payload invoice_id=%s", invoiceID)
			return entities.ClientPayment{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.ClientPayment{}, errors.New("payment gateway not configured")
	}

	inv, err := u.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading invoice invoice_id=%s err=%v", invoiceID, err)
		return entities.ClientPayment{}, err
	}
	if inv.ID == "" {
		return entities.ClientPayment{}, ErrInvoiceNotFound
	}
	if inv.Status == entities.InvoiceStatusVoided {
		return entities.ClientPayment{}, ErrInvoiceNotPayable
	}
	log.Printf("[payment][usecase] invoice loaded invoice_id=%s number=%s total=%.2f", inv.ID, inv.InvoiceNumber, inv.Total())

	// Mercado Pago uses external_reference to reconcile events; the amount
	// source of truth is the invoice in DB.
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = inv.ID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
		}
		reqMap["transaction_amount"] = inv.Total()
		if b, err := json.Marshal(reqMap); err == nil {
			mpPayload = b
		}
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, mpPayload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed invoice_id=%s err=%v", invoiceID, err)
		if isGatewayUnauthorized(err) {
			return entities.ClientPayment{}, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return entities.ClientPayment{}, ErrPaymentGatewayBadRequest
		}
		return entities.ClientPayment{}, err
	}
	log.Printf("[payment][usecase] payment gateway success invoice_id=%s provider_payment_id=%s provider_status=%s", invoiceID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed invoice_id=%s err=%v", invoiceID, err)
	}

	p := entities.ClientPayment{
		ID:           providerPaymentID,
		InvoiceID:    invoiceID,
		Date:         time.Now().UTC(),
		Status:       paymentStatusFromProvider(providerStatus),
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed invoice_id=%s payment_id=%s err=%v", invoiceID, p.ID, err)
		return entities.ClientPayment{}, err
	}
	log.Printf("[payment][usecase] create-and-settle success invoice_id=%s payment_id=%s status=%s", invoiceID, created.ID, created.Status)

	if u.bus != nil {
		u.bus.Publish(events.EventInvoicePaymentSettled, events.PaymentPayload{
			PaymentID: created.ID, InvoiceID: created.InvoiceID, Status: string(created.Status),
		})
	}
	return created, nil
}

func (u *InvoicePaymentUseCase) GetByID(ctx context.Context, id string) (entities.ClientPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ClientPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ClientPayment{}, err
	}
	if p.ID == "" {
		return entities.ClientPayment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *InvoicePaymentUseCase) ListByInvoiceID(ctx context.Context, invoiceID string) ([]entities.ClientPayment, error) {
	invoiceID = strings.TrimSpace(invoiceID)
	if invoiceID == "" {
		return nil, ErrInvalidPaymentInvoiceID
	}
	return u.repo.ListByInvoiceID(ctx, invoiceID)
}

func paymentStatusFromProvider(providerStatus string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(providerStatus)) {
	case "approved", "accredited":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "denied":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func isPaymentGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
