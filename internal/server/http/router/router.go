package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/metrics"
	"github.com/polkiloo/foodorders/internal/server/http/handlers"
	"github.com/polkiloo/foodorders/internal/server/http/middleware"
)

// Params collects router dependencies.
type Params struct {
	fx.In

	Facade  handlers.OrdersFacade
	Tokens  middleware.TokenParser
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.Metrics(p.Metrics))
	engine.Use(middleware.RequestBody(middleware.DefaultBodyLimit))
	// Streams must reach the client unbuffered.
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`/stream$`, `/ws$`})))

	orderHandler := handlers.NewOrderHandler(p.Facade)
	partnerHandler := handlers.NewPartnerHandler(p.Facade)
	paymentHandler := handlers.NewPaymentHandler(p.Facade)
	streamHandler := handlers.NewStreamHandler(p.Facade, p.Config.StreamRetry, p.Config.StreamHeartbeat, p.Config.StreamOrigins, p.Logger)
	healthHandler := handlers.NewHealthHandler(p.Facade)

	engine.GET("/health", healthHandler.Check)
	if p.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(p.Metrics.Handler()))
	}
	engine.POST("/webhooks/:provider", paymentHandler.Webhook)

	authed := engine.Group("")
	authed.Use(middleware.AuthRequired(p.Tokens))

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Place)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/reorder", orderHandler.Reorder)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.POST("/:id/pay", orderHandler.Pay)
	orders.GET("/:id/stream", streamHandler.SSE)
	orders.GET("/:id/ws", streamHandler.WebSocket)

	authed.POST("/payments/initiate", paymentHandler.Initiate)

	partner := authed.Group("/partner")
	partner.Use(middleware.PartnerRequired())
	partner.GET("/orders", partnerHandler.List)
	partner.POST("/orders/:id/status", partnerHandler.SetStatus)

	return engine
}
