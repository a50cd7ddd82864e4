package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/oba-crm/backend/internal/models"
)

// telegramBot is the published bot handle baked into the printed in-store
// QR codes; WhatsApp links use each market's own number.
const telegramBot = "oba_feedback_bot"

type MarketQR struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	WhatsAppURL string `json:"whatsappUrl"`
	TelegramURL string `json:"telegramUrl"`
	QRImageURL  string `json:"qrImageUrl"`
}

func marketQR(m models.Market) MarketQR {
	return MarketQR{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		WhatsAppURL: fmt.Sprintf("https://wa.me/%s?text=FEEDBACK_%s", m.Phone, m.ID),
		TelegramURL: fmt.Sprintf("https://t.me/%s?start=%s", telegramBot, m.ID),
		QRImageURL:  fmt.Sprintf("/api/qr-codes/%s/image", m.ID),
	}
}

// @Summary QR payloads for every market
// @Tags qr-codes
// @Produce json
// @Success 200 {array} MarketQR
// @Router /api/qr-codes [get]
func (h *Handler) QRCodesList(c *gin.Context) {
	markets, err := h.Store.ListMarkets(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Market")
		return
	}
	out := make([]MarketQR, 0, len(markets))
	for _, m := range markets {
		out = append(out, marketQR(m))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary QR payload for one market
// @Tags qr-codes
// @Produce json
// @Param marketId path string true "Market id"
// @Success 200 {object} MarketQR
// @Failure 404 {object} map[string]any
// @Router /api/qr-codes/{marketId} [get]
func (h *Handler) QRCodeDetails(c *gin.Context) {
	m, err := h.Store.GetMarket(c.Request.Context(), c.Param("marketId"))
	if err != nil {
		writeServiceError(c, err, "Market")
		return
	}
	c.JSON(http.StatusOK, marketQR(m))
}

// @Summary Rendered QR image for one market
// @Tags qr-codes
// @Produce png
// @Param marketId path string true "Market id"
// @Param channel query string false "whatsapp or telegram" default(whatsapp)
// @Success 200 {file} binary
// @Failure 404 {object} map[string]any
// @Router /api/qr-codes/{marketId}/image [get]
func (h *Handler) QRCodeImage(c *gin.Context) {
	m, err := h.Store.GetMarket(c.Request.Context(), c.Param("marketId"))
	if err != nil {
		writeServiceError(c, err, "Market")
		return
	}

	qr := marketQR(m)
	target := qr.WhatsAppURL
	if c.DefaultQuery("channel", "whatsapp") == "telegram" {
		target = qr.TelegramURL
	}

	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "QR_ERROR", "QR generation failed", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// @Summary List markets
// @Tags markets
// @Produce json
// @Success 200 {array} models.Market
// @Router /api/markets [get]
func (h *Handler) MarketsList(c *gin.Context) {
	markets, err := h.Store.ListMarkets(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Market")
		return
	}
	c.JSON(http.StatusOK, markets)
}
