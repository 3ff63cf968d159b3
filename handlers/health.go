package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler checks the health status of the service
// @Summary      Health check
// @Description  Report the dashboard mode, live sessions and whether the analytics backend answers
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "Service health status"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	status := gin.H{
		"status":   "healthy",
		"mode":     "demo",
		"sessions": h.registry.Len(),
		"backend":  "not_configured",
	}

	if h.backend != nil {
		status["mode"] = "backend"
		if err := h.backend.Ping(c.Request.Context()); err != nil {
			status["status"] = "degraded"
			status["backend"] = "unreachable"
			status["backend_error"] = err.Error()
		} else {
			status["backend"] = "connected"
		}
	}

	c.JSON(http.StatusOK, status)
}
