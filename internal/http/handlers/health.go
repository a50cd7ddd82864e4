package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Store unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "OBA CRM Backend is running"})
}
