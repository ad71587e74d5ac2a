package middleware

import (
	"net/http"
	"strings"

	"perfect-widget/internal/handler/httperr"
	"perfect-widget/internal/pkg/cookie"
	"perfect-widget/internal/pkg/errs"
	"perfect-widget/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ctxWidgetSessionKey = "widget_session"
	ctxSessionIDKey     = "session_id"
)

type SessionMiddleware struct {
	resolver usecase.SessionResolver
}

func NewSessionMiddleware(resolver usecase.SessionResolver) *SessionMiddleware {
	return &SessionMiddleware{resolver: resolver}
}

// RequireSession resolves the widget session from the session cookie or a
// bearer token and aborts with 401 when it is missing, invalid or expired.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errs.Wrap(errs.ErrSessionNotFound, "no session token"), "Widget session required", nil)
			return
		}

		session, err := m.resolver.Resolve(token)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired widget session", nil)
			return
		}

		c.Set(ctxWidgetSessionKey, session)
		c.Set(ctxSessionIDKey, session.ID.String())
		c.Next()
	}
}

// sessionToken prefers the cookie; embedding sites that block third-party
// cookies fall back to the bearer header.
func sessionToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

func GetSession(c *gin.Context) (*usecase.WidgetSession, bool) {
	v, exists := c.Get(ctxWidgetSessionKey)
	if !exists {
		return nil, false
	}
	session, ok := v.(*usecase.WidgetSession)
	return session, ok
}
