package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/server/http/dto"
	"github.com/polkiloo/foodorders/internal/server/http/middleware"
	"github.com/polkiloo/foodorders/internal/usecase"
)

const msgOrderNotFound = "Order not found"

// CurrentCaller extracts the authenticated caller from context.
func CurrentCaller(c *gin.Context) usecase.Caller {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return usecase.Caller{}
	}
	return usecase.Caller{Identity: principal.Identity(), Partner: principal.IsPartner()}
}

// pathOrderID parses the :id path parameter. Anything that is not a positive
// integer cannot name an order.
func pathOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondError maps domain errors to status codes. Unknown errors are recorded
// for the request logger and answered with the generic fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	if msg, ok := domainErrors.TransitionMessage(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail(msg))
		return
	}

	switch {
	case errors.Is(err, domainErrors.ErrInvalidPayload):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Invalid payload"))
	case errors.Is(err, domainErrors.ErrInvalidStatus):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Invalid status"))
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Invalid status transition"))
	case errors.Is(err, domainErrors.ErrPaymentRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("provider and order_id required"))
	case errors.Is(err, domainErrors.ErrUnsupportedProvider):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Unsupported provider"))
	case errors.Is(err, domainErrors.ErrInvalidSignature):
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid signature"))
	case errors.Is(err, domainErrors.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Forbidden"))
	case errors.Is(err, domainErrors.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Fail(msgOrderNotFound))
	case errors.Is(err, domainErrors.ErrPaymentsDisabled):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.Fail("Payments disabled"))
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail(fallback))
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           order.ID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		TotalCents:   order.TotalCents,
		CreatedAt:    order.CreatedAt,
	}
	if order.Owner != "" {
		owner := order.Owner
		resp.UserEmail = &owner
	}
	return resp
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	return response
}

func toOrderDetailsResponse(details model.OrderDetails) dto.OrderDetailsResponse {
	items := make([]dto.OrderItemResponse, 0, len(details.Items))
	for _, it := range details.Items {
		items = append(items, dto.OrderItemResponse{
			ID:         it.ID,
			OrderID:    it.OrderID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
			Qty:        it.Qty,
		})
	}
	return dto.OrderDetailsResponse{OrderResponse: toOrderResponse(details.Order), Items: items}
}

func toEventResponse(event model.Event) dto.EventResponse {
	resp := dto.EventResponse{Type: string(event.Type), Status: string(event.Status)}
	if event.Order != nil {
		order := toOrderResponse(*event.Order)
		resp.Order = &order
	}
	return resp
}
