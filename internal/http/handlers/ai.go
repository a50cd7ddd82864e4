package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/oba-crm/backend/internal/lexicon"
	"github.com/oba-crm/backend/internal/models"
)

type AnalyzeRequest struct {
	Message string `json:"message" validate:"required"`
}

// @Summary Analyze a single message
// @Tags ai
// @Accept json
// @Produce json
// @Param message body AnalyzeRequest true "Text to analyze"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/ai/analyze [post]
func (h *Handler) AIAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required", err.Error())
		return
	}

	analysis, elapsed, err := h.AI.AnalyzeMessage(c.Request.Context(), req.Message)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "AI_ERROR", "Analysis failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        req.Message,
		"analysis":       analysis,
		"processingTime": elapsed,
		"model":          h.ModelVersion,
	})
}

type AnalyzeBatchRequest struct {
	Messages []string `json:"messages" validate:"required,min=1"`
}

type batchResult struct {
	Message  string            `json:"message"`
	Analysis models.AIAnalysis `json:"analysis"`
	Error    string            `json:"error,omitempty"`
}

// @Summary Analyze a batch of messages
// @Tags ai
// @Accept json
// @Produce json
// @Param messages body AnalyzeBatchRequest true "Texts to analyze"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/ai/analyze-batch [post]
func (h *Handler) AIAnalyzeBatch(c *gin.Context) {
	var req AnalyzeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one message is required", err.Error())
		return
	}

	results := make([]batchResult, len(req.Messages))
	var wg sync.WaitGroup
	for i, msg := range req.Messages {
		wg.Add(1)
		go func(i int, msg string) {
			defer wg.Done()
			analysis, _, err := h.AI.AnalyzeMessage(c.Request.Context(), msg)
			results[i] = batchResult{Message: msg, Analysis: analysis}
			if err != nil {
				results[i].Error = err.Error()
			}
		}(i, msg)
	}
	wg.Wait()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(results),
		"results": results,
	})
}

// @Summary Model metadata
// @Tags ai
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/ai/model-info [get]
func (h *Handler) AIModelInfo(c *gin.Context) {
	categories := make([]string, 0, len(lexicon.CategoryPatterns)+1)
	for _, p := range lexicon.CategoryPatterns {
		categories = append(categories, string(p.Category))
	}
	categories = append(categories, string(models.CategoryGeneralFeedback))

	c.JSON(http.StatusOK, gin.H{
		"model":      h.ModelVersion,
		"language":   "az",
		"sentiments": []string{"positive", "negative", "neutral"},
		"categories": categories,
		"features": []string{
			"sentiment_analysis",
			"category_detection",
			"priority_scoring",
			"keyword_extraction",
			"department_routing",
		},
	})
}
