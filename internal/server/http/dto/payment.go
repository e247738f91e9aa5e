package dto

// InitiatePaymentRequest describes POST /payments/initiate payload.
type InitiatePaymentRequest struct {
	Provider string `json:"provider"`
	OrderID  int64  `json:"order_id"`
}

// PaymentRedirectResponse points the client at the provider checkout.
type PaymentRedirectResponse struct {
	Provider    string `json:"provider"`
	OrderID     int64  `json:"order_id"`
	RedirectURL string `json:"redirectUrl"`
}

// WebhookResponse acknowledges a provider callback.
type WebhookResponse struct {
	Received bool `json:"received"`
}
