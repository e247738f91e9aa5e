package model

// PaymentProvider names an external payment gateway.
type PaymentProvider string

// SupportedPaymentProviders lists gateways accepted by payment initiation.
var SupportedPaymentProviders = []PaymentProvider{
	"stripe", "paypal", "telr", "paytabs", "aps", "upi", "phonepe", "paytm",
}

// Supported reports whether the provider is in the fixed supported set.
func (p PaymentProvider) Supported() bool {
	for _, s := range SupportedPaymentProviders {
		if s == p {
			return true
		}
	}
	return false
}

// PaymentRedirect is the opaque checkout target returned to clients.
type PaymentRedirect struct {
	Provider    PaymentProvider
	OrderID     int64
	RedirectURL string
}
