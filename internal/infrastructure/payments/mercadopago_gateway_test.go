package payments

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "1")
	t.Setenv("MERCADOPAGO_MOCK", "")

	g, err := NewMercadoPagoGateway("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("echoes invoice reference", func(t *testing.T) {
		payload := json.RawMessage(`{"payment_method_id":"pix","transaction_amount":255,"external_reference":"inv-1"}`)
		id, status, resp, err := g.CreatePayment(context.Background(), payload)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == "" {
			t.Fatal("expected a provider payment id")
		}
		if status != "approved" {
			t.Fatalf("expected approved, got %s", status)
		}

		var parsed map[string]any
		if err := json.Unmarshal(resp, &parsed); err != nil {
			t.Fatalf("invalid provider response: %v", err)
		}
		if parsed["external_reference"] != "inv-1" {
			t.Fatalf("expected invoice reference in response, got: %s", resp)
		}
		if parsed["status_detail"] != "accredited" {
			t.Fatalf("unexpected response: %s", resp)
		}
	})

	t.Run("empty payload still approves", func(t *testing.T) {
		id, status, _, err := g.CreatePayment(context.Background(), json.RawMessage("{}"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == "" || status != "approved" {
			t.Fatalf("unexpected result id=%q status=%q", id, status)
		}
	})
}

func TestNewMercadoPagoGateway_MissingToken(t *testing.T) {
	t.Setenv("PAYMENT_GATEWAY_MOCK", "")
	t.Setenv("MERCADOPAGO_MOCK", "")

	if _, err := NewMercadoPagoGateway(""); err != ErrMissingMercadoPagoAccessToken {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
}

func TestInvoiceReference(t *testing.T) {
	if ref := invoiceReference(json.RawMessage(`{"external_reference":"inv-9"}`)); ref != "inv-9" {
		t.Fatalf("expected inv-9, got %q", ref)
	}
	if ref := invoiceReference(json.RawMessage("not json")); ref != "" {
		t.Fatalf("expected empty ref for malformed payload, got %q", ref)
	}
}
