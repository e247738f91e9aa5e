package usecase

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/pkg/auth"
)

// PaymentUseCase produces checkout redirects and accepts provider callbacks.
// Neither talks to a real gateway.
type PaymentUseCase struct {
	enabled bool
	baseURL string
	secrets map[string]string
	logger  *slog.Logger
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(enabled bool, baseURL string, secrets map[string]string, logger *slog.Logger) *PaymentUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentUseCase{
		enabled: enabled,
		baseURL: strings.TrimRight(baseURL, "/"),
		secrets: secrets,
		logger:  logger,
	}
}

// Initiate returns the provider checkout URL for the order.
func (u *PaymentUseCase) Initiate(provider model.PaymentProvider, orderID int64) (*model.PaymentRedirect, error) {
	if !u.enabled {
		return nil, domainErrors.ErrPaymentsDisabled
	}
	if provider == "" || orderID <= 0 {
		return nil, domainErrors.ErrPaymentRequest
	}
	if !provider.Supported() {
		return nil, domainErrors.ErrUnsupportedProvider
	}

	redirect := fmt.Sprintf("%s/%s/checkout?order=%s",
		u.baseURL, url.PathEscape(string(provider)), url.QueryEscape(fmt.Sprint(orderID)))
	return &model.PaymentRedirect{Provider: provider, OrderID: orderID, RedirectURL: redirect}, nil
}

// Webhook acknowledges a provider callback. When a secret is configured for
// the provider the payload signature must match.
func (u *PaymentUseCase) Webhook(provider model.PaymentProvider, payload []byte, signature string) error {
	if !provider.Supported() {
		return domainErrors.ErrUnsupportedProvider
	}
	if secret := u.secrets[string(provider)]; secret != "" {
		if !auth.VerifySignature(secret, payload, signature) {
			return domainErrors.ErrInvalidSignature
		}
	}

	u.logger.Info("payment webhook received", slog.String("provider", string(provider)), slog.Int("size", len(payload)))
	return nil
}
