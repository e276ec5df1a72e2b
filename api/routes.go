package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/customeros/webmail/api/handlers"
	"github.com/customeros/webmail/api/middleware"
	"github.com/customeros/webmail/config"
	"github.com/customeros/webmail/internal/enum"
	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/internal/tracing"
	"github.com/customeros/webmail/services"
)

const appSource = "webmail"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, cfg *config.AppConfig, log logger.Logger) {
	if s == nil {
		panic("Services cannot be nil")
	}

	// gin.Recovery must wrap the jaeger recovery, which re-panics after recording the span
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))
	r.Use(middleware.RequestIdMiddleware())
	r.Use(middleware.MetricsMiddleware())

	apiHandlers := handlers.InitHandlers(s, log)

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if cfg.APIKey != "" {
		api.Use(middleware.APIKeyMiddleware(middleware.APIKeyConfig{
			HeaderName:  middleware.APIKeyHeader,
			ValidAPIKey: cfg.APIKey,
		}))
	}
	api.Use(middleware.AuthMiddleware(middleware.AuthConfig{SessionJWTSecret: cfg.SessionJWTSecret}))
	api.Use(middleware.CustomContextMiddleware(appSource))
	api.Use(middleware.TracingMiddleware())
	{
		mails := api.Group("/mails")
		{
			mails.GET("", apiHandlers.Mails.List(enum.MailFolderAll))
			mails.GET("/inbox", apiHandlers.Mails.List(enum.MailFolderInbox))
			mails.GET("/spam", apiHandlers.Mails.List(enum.MailFolderSpam))
			mails.GET("/outbox", apiHandlers.Mails.List(enum.MailFolderOutbox))
			mails.GET("/trash", apiHandlers.Mails.List(enum.MailFolderTrash))
			mails.GET("/:messageId", apiHandlers.Mails.Get())
			mails.GET("/:messageId/attachments/:attachmentId", apiHandlers.Mails.GetAttachment())

			mails.POST("/send", apiHandlers.Mails.Send())
			mails.POST("/trash", apiHandlers.Mails.Trash())
			mails.POST("/batchDelete", apiHandlers.Mails.BatchDelete())
		}

		api.GET("/labels", apiHandlers.Mails.ListLabels())
	}
}
