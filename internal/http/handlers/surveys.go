package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/service"
	"github.com/oba-crm/backend/internal/store"
)

type CreateSurveyRequest struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Questions   []models.SurveyQuestion `json:"questions" validate:"required,min=1"`
	StartDate   string                  `json:"startDate"`
	EndDate     string                  `json:"endDate"`
}

// @Summary List surveys
// @Tags surveys
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Survey
// @Router /api/surveys [get]
func (h *Handler) SurveysList(c *gin.Context) {
	surveys, err := h.Surveys.List(c.Request.Context(), store.SurveyFilter{
		Status: models.SurveyStatus(c.Query("status")),
	})
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// @Summary Survey details
// @Tags surveys
// @Produce json
// @Param id path string true "Survey id"
// @Success 200 {object} models.Survey
// @Failure 404 {object} map[string]any
// @Router /api/surveys/{id} [get]
func (h *Handler) SurveyDetails(c *gin.Context) {
	survey, err := h.Surveys.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

// @Summary Create a survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param survey body CreateSurveyRequest true "Survey"
// @Success 201 {object} models.Survey
// @Failure 400 {object} map[string]any
// @Router /api/surveys [post]
func (h *Handler) SurveyCreate(c *gin.Context) {
	var req CreateSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title and at least one question are required", err.Error())
		return
	}

	survey, err := h.Surveys.Create(c.Request.Context(), service.CreateSurveyInput{
		Title:       req.Title,
		Description: req.Description,
		Questions:   req.Questions,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// @Summary Update survey fields
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path string true "Survey id"
// @Param survey body service.SurveyUpdate true "Fields to update"
// @Success 200 {object} models.Survey
// @Failure 404 {object} map[string]any
// @Router /api/surveys/{id} [put]
func (h *Handler) SurveyUpdate(c *gin.Context) {
	var upd service.SurveyUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	survey, err := h.Surveys.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

type ScheduleSurveyRequest struct {
	ScheduledDate string `json:"scheduledDate" validate:"required"`
	TargetCount   int    `json:"targetCount"`
}

// @Summary Schedule a survey send-out
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path string true "Survey id"
// @Param schedule body ScheduleSurveyRequest true "Schedule"
// @Success 200 {object} models.Survey
// @Failure 400 {object} map[string]any
// @Router /api/surveys/{id}/schedule [post]
func (h *Handler) SurveySchedule(c *gin.Context) {
	var req ScheduleSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "scheduledDate is required", err.Error())
		return
	}
	survey, err := h.Surveys.Schedule(c.Request.Context(), c.Param("id"), req.ScheduledDate, req.TargetCount)
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

// @Summary Activate a survey
// @Tags surveys
// @Produce json
// @Param id path string true "Survey id"
// @Success 200 {object} models.Survey
// @Failure 404 {object} map[string]any
// @Router /api/surveys/{id}/activate [post]
func (h *Handler) SurveyActivate(c *gin.Context) {
	survey, err := h.Surveys.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

// @Summary Pause a survey
// @Tags surveys
// @Produce json
// @Param id path string true "Survey id"
// @Success 200 {object} models.Survey
// @Failure 404 {object} map[string]any
// @Router /api/surveys/{id}/pause [post]
func (h *Handler) SurveyPause(c *gin.Context) {
	survey, err := h.Surveys.Pause(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, survey)
}

// @Summary Survey results
// @Tags surveys
// @Produce json
// @Param id path string true "Survey id"
// @Success 200 {object} service.SurveyResults
// @Failure 404 {object} map[string]any
// @Router /api/surveys/{id}/results [get]
func (h *Handler) SurveyResults(c *gin.Context) {
	results, err := h.Surveys.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, results)
}

// @Summary Delete a survey
// @Tags surveys
// @Produce json
// @Param id path string true "Survey id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/surveys/{id} [delete]
func (h *Handler) SurveyDelete(c *gin.Context) {
	if err := h.Surveys.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err, "Survey")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Sorğu silindi"})
}
