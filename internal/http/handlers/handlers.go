// Package handlers holds the REST boundary layer. Handlers validate input,
// delegate to the services and translate errors into the JSON error
// envelope; all classification and lifecycle decisions live below.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/oba-crm/backend/internal/ai"
	"github.com/oba-crm/backend/internal/service"
	"github.com/oba-crm/backend/internal/store"
	"github.com/oba-crm/backend/internal/ws"
)

type Handler struct {
	Feedback   *service.FeedbackService
	CallCenter *service.CallCenterService
	Surveys    *service.SurveyService
	Store      store.Store
	AI         ai.Analyzer
	// ModelVersion is reported on analyze responses and model-info.
	ModelVersion string
	Hub          *ws.Hub
	Validator    *validator.Validate
	Logger       zerolog.Logger
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeServiceError maps service/store errors onto the envelope.
func writeServiceError(c *gin.Context, err error, entity string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(c, http.StatusNotFound, "NOT_FOUND", entity+" not found", nil)
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status value", err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Operation failed", err.Error())
	}
}

// WS upgrades a dashboard client onto the event hub.
func (h *Handler) WS(c *gin.Context) {
	if err := ws.Serve(h.Hub, c.Writer, c.Request); err != nil {
		h.Logger.Error().Err(err).Msg("ws upgrade failed")
	}
}
