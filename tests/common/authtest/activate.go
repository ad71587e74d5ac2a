//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	resdto "perfect-widget/internal/handler/dto/response"
	"perfect-widget/internal/pkg/cookie"
	"perfect-widget/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// ActivateWidget starts a widget session and returns its token as issued in
// the session cookie.
func ActivateWidget(t *testing.T, router *gin.Engine) (string, resdto.ActivateResponse) {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/widget/sessions", nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	sessionCookie := httptest.ExtractCookie(w, cookie.SessionCookieName)
	require.NotNil(t, sessionCookie, "Session token not found in cookies")
	require.NotEmpty(t, sessionCookie.Value, "Session token cookie is empty")

	var resp resdto.ActivateResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &resp)
	require.Equal(t, sessionCookie.Value, resp.Token)

	return sessionCookie.Value, resp
}
