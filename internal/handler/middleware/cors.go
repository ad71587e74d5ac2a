package middleware

import (
	"log/slog"
	"slices"

	"perfect-widget/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware admits the restaurant sites the widget is embedded on.
// Origins may use a subdomain wildcard such as https://*.example.com.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.AllowOrigins
	corsCfg.AllowWildcard = true
	corsCfg.AllowMethods = cfg.AllowMethods
	corsCfg.AllowHeaders = withHeader(cfg.AllowHeaders, RequestIDHeader)
	corsCfg.ExposeHeaders = withHeader(cfg.ExposeHeaders, RequestIDHeader)
	corsCfg.AllowCredentials = cfg.AllowCredentials
	corsCfg.MaxAge = cfg.MaxAge

	logger.Info("widget CORS configured", "allow_origins", cfg.AllowOrigins, "allow_credentials", cfg.AllowCredentials)
	return cors.New(corsCfg)
}

func withHeader(headers []string, header string) []string {
	if slices.Contains(headers, header) {
		return headers
	}
	return append(slices.Clone(headers), header)
}
