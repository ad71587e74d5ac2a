//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"perfect-widget/internal/handler/middleware"
	"perfect-widget/internal/pkg/config"
	"perfect-widget/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(cfg config.WidgetConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := middleware.NewRateLimiter(cfg)
	router.GET("/limited", limiter.Limit(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst is allowed then throttled", func(t *testing.T) {
		router := newLimitedRouter(config.WidgetConfig{RateLimitPerMinute: 1, RateLimitBurst: 2, SessionTTL: time.Hour})

		assert.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, router, http.MethodGet, "/limited", nil, "").Code)
		assert.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, router, http.MethodGet, "/limited", nil, "").Code)

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/limited", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusTooManyRequests, "Rate limit exceeded")
		httptest.AssertHeaders(t, rec, map[string]string{"Retry-After": "60"})
	})

	t.Run("zero settings fall back to a usable limit", func(t *testing.T) {
		router := newLimitedRouter(config.WidgetConfig{})

		assert.Equal(t, http.StatusNoContent, httptest.PerformRequest(t, router, http.MethodGet, "/limited", nil, "").Code)
	})
}
