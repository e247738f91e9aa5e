package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/server/http/dto"
)

// PartnerHandler serves restaurant partner endpoints.
type PartnerHandler struct {
	facade PartnerFacade
}

// NewPartnerHandler constructs PartnerHandler.
func NewPartnerHandler(facade PartnerFacade) *PartnerHandler {
	return &PartnerHandler{facade: facade}
}

// List handles GET /partner/orders.
func (h *PartnerHandler) List(c *gin.Context) {
	orders, err := h.facade.RecentOrders(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error listing orders")
		return
	}
	c.JSON(http.StatusOK, dto.OK(toOrderResponses(orders)))
}

// SetStatus handles POST /partner/orders/:id/status.
func (h *PartnerHandler) SetStatus(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domainErrors.ErrInvalidStatus, "")
		return
	}

	status := model.OrderStatus(strings.TrimSpace(req.Status))
	if err := h.facade.SetOrderStatus(c.Request.Context(), id, status); err != nil {
		respondError(c, err, "Error updating status")
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.StatusResponse{ID: id, Status: string(status)}))
}
