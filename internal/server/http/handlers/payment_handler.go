package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/server/http/dto"
)

// SignatureHeader carries the provider's HMAC of the webhook body.
const SignatureHeader = "X-Signature"

// PaymentHandler serves payment initiation and provider webhooks.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initiate handles POST /payments/initiate.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	// Unbindable bodies reach the use case empty; disabled payments win.
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = dto.InitiatePaymentRequest{}
	}

	provider := model.PaymentProvider(strings.ToLower(strings.TrimSpace(req.Provider)))
	redirect, err := h.facade.InitiatePayment(c.Request.Context(), provider, req.OrderID)
	if err != nil {
		respondError(c, err, "Error initiating payment")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.PaymentRedirectResponse{
		Provider:    string(redirect.Provider),
		OrderID:     redirect.OrderID,
		RedirectURL: redirect.RedirectURL,
	}))
}

// Webhook handles POST /webhooks/:provider.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, domainErrors.ErrInvalidPayload, "")
		return
	}

	provider := model.PaymentProvider(strings.ToLower(c.Param("provider")))
	if err := h.facade.PaymentWebhook(c.Request.Context(), provider, payload, c.GetHeader(SignatureHeader)); err != nil {
		respondError(c, err, "Error processing webhook")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.WebhookResponse{Received: true}))
}
