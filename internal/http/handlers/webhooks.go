package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oba-crm/backend/internal/models"
	"github.com/oba-crm/backend/internal/service"
)

type WhatsAppWebhookRequest struct {
	Message      string `json:"message" validate:"required"`
	Phone        string `json:"phone"`
	CustomerName string `json:"customerName"`
	MarketID     string `json:"marketId"`
}

// @Summary WhatsApp inbound webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Param message body WhatsAppWebhookRequest true "Inbound message"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/webhook/whatsapp [post]
func (h *Handler) WhatsAppWebhook(c *gin.Context) {
	var req WhatsAppWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required", err.Error())
		return
	}

	customer := models.Customer{Name: req.CustomerName, Phone: req.Phone}
	if customer.Name == "" {
		customer.Name = "Anonim Müştəri"
	}
	if customer.Phone == "" {
		customer.Phone = "+994XXXXXXXXX"
	}

	fb, _, err := h.Feedback.Create(c.Request.Context(), service.CreateFeedbackInput{
		Text:     req.Message,
		Customer: customer,
		MarketID: req.MarketID,
		Source:   models.SourceWhatsApp,
	})
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"messageId":    fb.ID,
		"aiAnalysis":   fb.AIAnalysis,
		"autoResponse": service.AutoResponse(models.SourceWhatsApp, fb.AIAnalysis.Sentiment),
	})
}

type TelegramWebhookRequest struct {
	Message  string `json:"message" validate:"required"`
	ChatID   string `json:"chatId"`
	Username string `json:"username"`
	MarketID string `json:"marketId"`
}

// @Summary Telegram inbound webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Param message body TelegramWebhookRequest true "Inbound message"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/webhook/telegram [post]
func (h *Handler) TelegramWebhook(c *gin.Context) {
	var req TelegramWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required", err.Error())
		return
	}

	customer := models.Customer{Name: req.Username, ChatID: req.ChatID}
	if customer.Name == "" {
		customer.Name = "Telegram User"
	}

	fb, _, err := h.Feedback.Create(c.Request.Context(), service.CreateFeedbackInput{
		Text:     req.Message,
		Customer: customer,
		MarketID: req.MarketID,
		Source:   models.SourceTelegram,
	})
	if err != nil {
		writeServiceError(c, err, "Feedback")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"messageId":    fb.ID,
		"aiAnalysis":   fb.AIAnalysis,
		"autoResponse": service.AutoResponse(models.SourceTelegram, fb.AIAnalysis.Sentiment),
	})
}

type SendMessageRequest struct {
	Phone   string `json:"phone"`
	ChatID  string `json:"chatId"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type"`
}

// SendMessage simulates outbound delivery on either channel; it logs and
// acknowledges without contacting a provider.
func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message is required", err.Error())
		return
	}

	to := req.Phone
	if to == "" {
		to = req.ChatID
	}
	h.Logger.Info().Str("to", to).Str("type", req.Type).Msg("outbound message simulated")

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": uuid.NewString(),
		"status":    "sent",
	})
}
