package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/salehkamalkamel/rofida-furniture-sub001/internal/domain"
)

const sessionKey = "session"

// sessionMiddleware resolves an Authorization: Bearer token to a session
// and stores it on the context. A missing or invalid token leaves the
// request anonymous-to-the-router; handlers that need identity gate on
// requireSession.
func sessionMiddleware(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.Next()
			return
		}
		sess, err := d.Auth.SessionFromToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.Next()
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// sessionFrom returns the resolved session or nil.
func sessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*domain.Session)
	return sess
}

func requireSession(c *gin.Context) {
	if sessionFrom(c) == nil {
		respondError(c, http.StatusUnauthorized, "authentication required", nil)
		c.Abort()
		return
	}
	c.Next()
}

func requireAdmin(c *gin.Context) {
	if !sessionFrom(c).IsAdmin() {
		respondError(c, http.StatusForbidden, "admin access required", nil)
		c.Abort()
		return
	}
	c.Next()
}

// bearerToken returns the raw token from the Authorization header, or "".
func bearerToken(c *gin.Context) string {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
