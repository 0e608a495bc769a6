package events

import "testing"

func TestMemoryBus(t *testing.T) {
	t.Run("publish reaches subscriber", func(t *testing.T) {
		bus := NewMemoryBus()
		var got []string
		bus.Subscribe(EventEstimateApproved, func(event string, payload any) {
			p := payload.(EstimatePayload)
			got = append(got, event+":"+p.EstimateID)
		})

		bus.Publish(EventEstimateApproved, EstimatePayload{EstimateID: "est-1"})
		bus.Publish(EventEstimateRejected, EstimatePayload{EstimateID: "est-2"})

		if len(got) != 1 || got[0] != "estimate_approved:est-1" {
			t.Fatalf("unexpected deliveries: %v", got)
		}
	})

	t.Run("wildcard subscriber", func(t *testing.T) {
		bus := NewMemoryBus()
		count := 0
		bus.Subscribe("*", func(string, any) { count++ })

		bus.Publish(EventEstimateSubmitted, EstimatePayload{})
		bus.Publish(EventInvoicePaymentSettled, PaymentPayload{})

		if count != 2 {
			t.Fatalf("expected 2 deliveries, got %d", count)
		}
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewMemoryBus()
		count := 0
		token := bus.Subscribe(EventEstimateSubmitted, func(string, any) { count++ })

		bus.Publish(EventEstimateSubmitted, EstimatePayload{})
		bus.Unsubscribe(token)
		bus.Publish(EventEstimateSubmitted, EstimatePayload{})

		if count != 1 {
			t.Fatalf("expected 1 delivery after unsubscribe, got %d", count)
		}
	})
}
