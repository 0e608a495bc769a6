package request

import "encoding/json"

// PaymentCreateRequest is the payload for the invoice payment route.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago schemas.

type PaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
