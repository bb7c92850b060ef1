package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie names the cookie holding the storefront session id. The
	// cart is scoped to this id, not to a user account.
	SessionCookie = "storefront_session"

	// SessionIDKey is the gin context key for the resolved session id.
	SessionIDKey = "session_id"
)

// Session resolves the session id from the cookie (or X-Session-ID header
// for API clients) and issues a fresh one when absent. Every request ends
// up with a session id in the context.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = c.GetHeader("X-Session-ID")
		}
		if sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, 60*60*24*30, "/", "", false, true)
		}
		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the session id resolved by Session().
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
