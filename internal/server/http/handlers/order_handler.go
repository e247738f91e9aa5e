package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/server/http/dto"
	"github.com/polkiloo/foodorders/internal/usecase"
)

// OrderHandler manages customer order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domainErrors.ErrInvalidPayload, "")
		return
	}

	in := usecase.PlaceOrderInput{RestaurantID: req.RestaurantID, Items: make([]usecase.ItemInput, 0, len(req.Items))}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.ItemInput{Name: it.Name, PriceCents: it.PriceCents, Qty: it.Qty})
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentCaller(c), in)
	if err != nil {
		respondError(c, err, "Error creating order")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(toOrderResponse(*order)))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentCaller(c))
	if err != nil {
		respondError(c, err, "Error listing orders")
		return
	}
	c.JSON(http.StatusOK, dto.OK(toOrderResponses(orders)))
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	details, err := h.facade.Order(c.Request.Context(), CurrentCaller(c), id)
	if err != nil {
		respondError(c, err, "Error fetching order")
		return
	}
	c.JSON(http.StatusOK, dto.OK(toOrderDetailsResponse(*details)))
}

// Reorder handles POST /orders/:id/reorder.
func (h *OrderHandler) Reorder(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	order, err := h.facade.Reorder(c.Request.Context(), CurrentCaller(c), id)
	if err != nil {
		respondError(c, err, "Error reordering")
		return
	}
	c.JSON(http.StatusCreated, dto.OK(toOrderResponse(*order)))
}

// Cancel handles POST /orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	order, err := h.facade.CancelOrder(c.Request.Context(), CurrentCaller(c), id)
	if err != nil {
		respondError(c, err, "Error cancelling order")
		return
	}
	c.JSON(http.StatusOK, dto.OK(toOrderResponse(*order)))
}

// Pay handles POST /orders/:id/pay.
func (h *OrderHandler) Pay(c *gin.Context) {
	id, ok := pathOrderID(c)
	if !ok {
		respondError(c, domainErrors.ErrNotFound, "")
		return
	}
	order, err := h.facade.PayOrder(c.Request.Context(), CurrentCaller(c), id)
	if err != nil {
		respondError(c, err, "Error paying order")
		return
	}
	c.JSON(http.StatusOK, dto.OK(toOrderResponse(*order)))
}
