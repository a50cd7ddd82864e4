package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/service"
	"github.com/oba-crm/backend/internal/store"
)

// @Summary List feedbacks
// @Tags feedbacks
// @Produce json
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param department query string false "Department filter"
// @Param limit query int false "Max results"
// @Success 200 {array} models.Feedback
// @Router /api/feedbacks [get]
func (h *Handler) FeedbacksList(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	filter := store.FeedbackFilter{
		Status:     models.FeedbackStatus(c.Query("status")),
		Priority:   models.Priority(c.Query("priority")),
		Department: models.Department(c.Query("department")),
		Limit:      limit,
	}

	items, err := h.Feedback.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}
	if items == nil {
		items = []models.Feedback{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) FeedbackDetails(c *gin.Context) {
	fb, err := h.Feedback.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}
	c.JSON(http.StatusOK, fb)
}

type CreateFeedbackRequest struct {
	Text         string `json:"text" validate:"required"`
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	MarketID     string `json:"marketId"`
}

// @Summary Create feedback
// @Description Classifies the message and stores the feedback; escalated messages also open a call-center ticket.
// @Tags feedbacks
// @Accept json
// @Produce json
// @Param feedback body CreateFeedbackRequest true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} map[string]any
// @Router /api/feedbacks [post]
func (h *Handler) FeedbackCreate(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message text is required", err.Error())
		return
	}

	customer := models.Customer{Name: req.CustomerName, Phone: req.Phone}
	if customer.Name == "" {
		customer.Name = "Anonim Müştəri"
	}

	fb, _, err := h.Feedback.Create(c.Request.Context(), service.CreateFeedbackInput{
		Text:     req.Text,
		Customer: customer,
		MarketID: req.MarketID,
		Source:   models.SourceWeb,
	})
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}
	c.JSON(http.StatusCreated, fb)
}

type UpdateFeedbackRequest struct {
	Status models.FeedbackStatus `json:"status" validate:"required"`
}

// @Summary Update feedback status
// @Tags feedbacks
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param update body UpdateFeedbackRequest true "Status"
// @Success 200 {object} models.Feedback
// @Router /api/feedbacks/{id} [put]
func (h *Handler) FeedbackUpdate(c *gin.Context) {
	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Status is required", err.Error())
		return
	}

	fb, err := h.Feedback.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}
	c.JSON(http.StatusOK, fb)
}

// @Summary Feedback statistics
// @Tags feedbacks
// @Produce json
// @Success 200 {object} service.FeedbackStats
// @Router /api/feedbacks/stats/summary [get]
func (h *Handler) FeedbackStats(c *gin.Context) {
	stats, err := h.Feedback.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}
	c.JSON(http.StatusOK, stats)
}
