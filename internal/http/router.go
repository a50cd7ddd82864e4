package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/oba-crm/backend/internal/ai"
	"github.com/oba-crm/backend/internal/config"
	"github.com/oba-crm/backend/internal/http/handlers"
	"github.com/oba-crm/backend/internal/http/middleware"
	"github.com/oba-crm/backend/internal/service"
	"github.com/oba-crm/backend/internal/store"
	"github.com/oba-crm/backend/internal/ws"

	_ "github.com/oba-crm/backend/docs"
)

type Deps struct {
	Store      store.Store
	AI         ai.Analyzer
	Feedback   *service.FeedbackService
	CallCenter *service.CallCenterService
	Surveys    *service.SurveyService
	Hub        *ws.Hub
}

func Router(cfg config.Config, deps Deps, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Feedback:     deps.Feedback,
		CallCenter:   deps.CallCenter,
		Surveys:      deps.Surveys,
		Store:        deps.Store,
		AI:           deps.AI,
		ModelVersion: cfg.AIModelVersion,
		Hub:          deps.Hub,
		Validator:    validator.New(),
		Logger:       logger,
	}

	r.GET("/api/health", h.Health)
	r.GET("/ws", h.WS)

	api := r.Group("/api")
	{
		api.GET("/feedbacks", h.FeedbacksList)
		api.GET("/feedbacks/stats/summary", h.FeedbackStats)
		api.GET("/feedbacks/:id", h.FeedbackDetails)
		api.POST("/feedbacks", h.FeedbackCreate)
		api.PUT("/feedbacks/:id", h.FeedbackUpdate)

		api.POST("/webhook/whatsapp", h.WhatsAppWebhook)
		api.POST("/webhook/whatsapp/send", h.SendMessage)
		api.POST("/webhook/telegram", h.TelegramWebhook)
		api.POST("/webhook/telegram/send", h.SendMessage)

		api.POST("/ai/analyze", h.AIAnalyze)
		api.POST("/ai/analyze-batch", h.AIAnalyzeBatch)
		api.GET("/ai/model-info", h.AIModelInfo)

		api.GET("/call-center/tickets", h.TicketsList)
		api.GET("/call-center/stats", h.TicketStats)
		api.GET("/call-center/tickets/:id", h.TicketDetails)

		api.GET("/surveys", h.SurveysList)
		api.GET("/surveys/:id", h.SurveyDetails)
		api.GET("/surveys/:id/results", h.SurveyResults)

		api.GET("/markets", h.MarketsList)
		api.GET("/qr-codes", h.QRCodesList)
		api.GET("/qr-codes/:marketId", h.QRCodeDetails)
		api.GET("/qr-codes/:marketId/image", h.QRCodeImage)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/call-center/tickets", h.TicketCreate)
		admin.PUT("/call-center/tickets/:id", h.TicketUpdate)
		admin.POST("/call-center/tickets/:id/notes", h.TicketAddNote)
		admin.POST("/call-center/tickets/:id/call", h.TicketSimulateCall)
		admin.POST("/call-center/tickets/:id/recalculate", h.TicketRecalculate)

		admin.POST("/surveys", h.SurveyCreate)
		admin.PUT("/surveys/:id", h.SurveyUpdate)
		admin.POST("/surveys/:id/schedule", h.SurveySchedule)
		admin.POST("/surveys/:id/activate", h.SurveyActivate)
		admin.POST("/surveys/:id/pause", h.SurveyPause)
		admin.DELETE("/surveys/:id", h.SurveyDelete)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
