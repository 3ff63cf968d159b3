package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"insightiq/workspace"
)

const (
	sessionCookie = "insightiq_session"
	sessionKey    = "session_id"
	sessionMaxAge = 30 * 24 * 60 * 60
)

// SessionMiddleware resolves the caller's session from the X-User-ID header or the
// session cookie, issuing a new cookie on first visit.
func (h *Handlers) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-User-ID")
		if id == "" {
			if v, err := c.Cookie(sessionCookie); err == nil && v != "" {
				id = v
			}
		}
		if id == "" {
			id = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func (h *Handlers) workspace(c *gin.Context) *workspace.Workspace {
	return h.registry.Get(c.GetString(sessionKey))
}
