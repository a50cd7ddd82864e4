package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/service"
	"github.com/oba-crm/backend/internal/store"
)

// @Summary List call-center tickets
// @Tags call-center
// @Produce json
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Success 200 {array} models.Ticket
// @Router /api/call-center/tickets [get]
func (h *Handler) TicketsList(c *gin.Context) {
	filter := store.TicketFilter{
		Status:   models.TicketStatus(c.Query("status")),
		Priority: models.Priority(c.Query("priority")),
	}

	items, err := h.CallCenter.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	if items == nil {
		items = []models.Ticket{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) TicketDetails(c *gin.Context) {
	t, err := h.CallCenter.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	c.JSON(http.StatusOK, t)
}

type CreateTicketRequest struct {
	FeedbackID string `json:"feedbackId" validate:"required"`
}

// @Summary Create ticket from feedback
// @Tags call-center
// @Accept json
// @Produce json
// @Param ticket body CreateTicketRequest true "Originating feedback"
// @Success 201 {object} models.Ticket
// @Router /api/call-center/tickets [post]
func (h *Handler) TicketCreate(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "feedbackId is required", err.Error())
		return
	}

	t, err := h.CallCenter.CreateFromFeedback(c.Request.Context(), req.FeedbackID)
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Update ticket
// @Description Only status, assignedTo and priority are mutable.
// @Tags call-center
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param update body service.TicketUpdate true "Fields"
// @Success 200 {object} models.Ticket
// @Router /api/call-center/tickets/{id} [put]
func (h *Handler) TicketUpdate(c *gin.Context) {
	var upd service.TicketUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	t, err := h.CallCenter.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	c.JSON(http.StatusOK, t)
}

type AddNoteRequest struct {
	Text   string `json:"text" validate:"required"`
	Author string `json:"author"`
	Type   string `json:"type"`
}

// @Summary Add ticket note
// @Tags call-center
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param note body AddNoteRequest true "Note"
// @Success 200 {object} models.Ticket
// @Router /api/call-center/tickets/{id}/notes [post]
func (h *Handler) TicketAddNote(c *gin.Context) {
	var req AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Note text is required", err.Error())
		return
	}

	t, err := h.CallCenter.AddNote(c.Request.Context(), c.Param("id"), req.Text, req.Author, req.Type)
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	c.JSON(http.StatusOK, t)
}

type SimulateCallRequest struct {
	Operator string `json:"operator"`
}

// @Summary Simulate outbound call
// @Tags call-center
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string]any
// @Router /api/call-center/tickets/{id}/call [post]
func (h *Handler) TicketSimulateCall(c *gin.Context) {
	var req SimulateCallRequest
	_ = c.ShouldBindJSON(&req)

	t, err := h.CallCenter.SimulateCall(c.Request.Context(), c.Param("id"), req.Operator)
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Zəng simulyasiya edildi",
		"ticket":  t,
	})
}

// @Summary Recalculate ticket priority
// @Description Re-scores the ticket with the weighted priority policy.
// @Tags call-center
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} map[string]any
// @Router /api/call-center/tickets/{id}/recalculate [post]
func (h *Handler) TicketRecalculate(c *gin.Context) {
	t, decision, err := h.CallCenter.Recalculate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticket":   t,
		"decision": decision,
	})
}

// @Summary Call-center statistics
// @Tags call-center
// @Produce json
// @Success 200 {object} service.TicketStats
// @Router /api/call-center/stats [get]
func (h *Handler) TicketStats(c *gin.Context) {
	stats, err := h.CallCenter.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Ticket")
		return
	}
	c.JSON(http.StatusOK, stats)
}
