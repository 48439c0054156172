package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the shopping session id on cart and checkout routes
	SessionHeader = "X-Session-ID"

	sessionContextKey = "session_id"
)

// SessionMiddleware resolves the shopping session id for cart routes. A
// missing or blank header gets a fresh uuid; the id is echoed back on the
// response so clients can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.Set(sessionContextKey, sessionID)
		c.Header(SessionHeader, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session id set by SessionMiddleware
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
