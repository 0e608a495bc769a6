package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propserv/internal/adapter/http/handlers/mocks"
	"propserv/internal/domain/entities"
	"propserv/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_CreatePaymentByInvoiceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:invoice_id", h.CreatePaymentByInvoiceID)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/inv-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invoice not payable maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:invoice_id", h.CreatePaymentByInvoiceID)

		uc.EXPECT().CreateAndSettle(gomock.Any(), "inv-1", gomock.Any()).Return(entities.ClientPayment{}, usecase.ErrInvoiceNotPayable)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/inv-1", bytes.NewBufferString(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("gateway unauthorized maps to 401", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:invoice_id", h.CreatePaymentByInvoiceID)

		uc.EXPECT().CreateAndSettle(gomock.Any(), "inv-1", gomock.Any()).Return(entities.ClientPayment{}, usecase.ErrPaymentGatewayUnauthorized)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/inv-1", bytes.NewBufferString(`{"payment_method_id":"pix"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("success with mp_payload envelope", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.POST("/v1/payments/:invoice_id", h.CreatePaymentByInvoiceID)

		now := time.Now().UTC()
		uc.EXPECT().CreateAndSettle(gomock.Any(), "inv-1", gomock.Any()).Return(entities.ClientPayment{ID: "pay-1", InvoiceID: "inv-1", Date: now, Status: entities.PaymentStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/inv-1", bytes.NewBufferString(`{"mp_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_GetPaymentByInvoiceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	t.Run("no payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/invoice/:invoice_id", h.GetPaymentByInvoiceID)

		uc.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/invoice/inv-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("returns latest payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/invoice/:invoice_id", h.GetPaymentByInvoiceID)

		older := entities.ClientPayment{ID: "pay-1", InvoiceID: "inv-1", Date: time.Now().Add(-time.Hour), Status: entities.PaymentStatusPending}
		newer := entities.ClientPayment{ID: "pay-2", InvoiceID: "inv-1", Date: time.Now(), Status: entities.PaymentStatusApproved}
		uc.EXPECT().ListByInvoiceID(gomock.Any(), "inv-1").Return([]entities.ClientPayment{older, newer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/invoice/inv-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-2" {
			t.Fatalf("expected latest payment, got: %s", w.Body.String())
		}
	})
}

func TestPaymentHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoicePaymentUseCase(ctrl)
		h := NewPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:id", h.GetPayment)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.ClientPayment{}, usecase.ErrPaymentNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestReadMPPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newCtx := func(body string) (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		return c, w
	}

	t.Run("empty body yields empty object", func(t *testing.T) {
		c, _ := newCtx("")
		payload, err := readMPPayload(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(payload) != "{}" {
			t.Fatalf("expected {}, got %s", payload)
		}
	})

	t.Run("unwraps mp_payload envelope", func(t *testing.T) {
		c, _ := newCtx(`{"mp_payload":{"payment_method_id":"pix"}}`)
		payload, err := readMPPayload(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Fatalf("invalid payload json: %v", err)
		}
		if decoded["payment_method_id"] != "pix" {
			t.Fatalf("unexpected payload: %s", payload)
		}
	})

	t.Run("null envelope is rejected", func(t *testing.T) {
		c, _ := newCtx(`{"mp_payload":null}`)
		if _, err := readMPPayload(c); err == nil {
			t.Fatal("expected error for null mp_payload")
		}
	})

	t.Run("invalid json is rejected", func(t *testing.T) {
		c, _ := newCtx("{")
		if _, err := readMPPayload(c); err == nil {
			t.Fatal("expected error for invalid json")
		}
	})
}
