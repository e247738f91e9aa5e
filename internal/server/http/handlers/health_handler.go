package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodorders/internal/server/http/dto"
)

const serviceName = "orders"

// HealthHandler reports liveness together with database reachability.
type HealthHandler struct {
	facade HealthFacade
	now    func() time.Time
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade, now: time.Now}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	resp := dto.HealthResponse{Status: "healthy", Service: serviceName, Timestamp: h.now().UTC()}
	if err := h.facade.Health(c.Request.Context()); err != nil {
		_ = c.Error(err)
		resp.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, dto.Response{Success: false, Data: resp, Error: "Database unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.OK(resp))
}
