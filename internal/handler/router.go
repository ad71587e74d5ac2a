package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"perfect-widget/internal/handler/api"
	"perfect-widget/internal/handler/middleware"
	"perfect-widget/internal/pkg/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *slog.Logger,
	widgetHandler *api.WidgetHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, widgetHandler, sessionMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, widgetHandler *api.WidgetHandler, sessionMiddleware *middleware.SessionMiddleware, rateLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// routes that reach the booking service are throttled per session
	limited := []gin.HandlerFunc{rateLimiter.Limit()}

	widget := engine.Group("/api/widget")
	{
		addRoutes(widget, []route{
			{Method: http.MethodPost, Path: "/sessions", Handler: widgetHandler.Activate, Mw: limited},
		})

		session := widget.Group("/session")
		session.Use(sessionMiddleware.RequireSession())
		addRoutes(session, []route{
			{Method: http.MethodGet, Path: "", Handler: widgetHandler.GetSession},
			{Method: http.MethodDelete, Path: "", Handler: widgetHandler.CloseSession},
			{Method: http.MethodPut, Path: "/party-size", Handler: widgetHandler.SetPartySize, Mw: limited},
			{Method: http.MethodPut, Path: "/date", Handler: widgetHandler.SetDate, Mw: limited},
			{Method: http.MethodPut, Path: "/time", Handler: widgetHandler.SelectTime},
			{Method: http.MethodPut, Path: "/contact", Handler: widgetHandler.UpdateContact, Mw: limited},
			{Method: http.MethodPost, Path: "/submit", Handler: widgetHandler.Submit},
			{Method: http.MethodPost, Path: "/cancel", Handler: widgetHandler.Cancel, Mw: limited},
			{Method: http.MethodPost, Path: "/confirm", Handler: widgetHandler.Confirm, Mw: limited},
			{Method: http.MethodDelete, Path: "/alerts/:field", Handler: widgetHandler.DismissAlerts},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(slices.Clone(r.Mw), r.Handler)
		g.Handle(r.Method, r.Path, handlers...)
	}
}
