package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CtxSessionID and CtxIdentity are the gin context keys set by the
	// session and guard middleware.
	CtxSessionID = "sessionID"
	CtxIdentity  = "identity"
)

// SessionID ensures every browser carries a session cookie and exposes its
// value on the gin context. The cookie identifies the durable-storage slot
// holding the application session token.
func SessionID(cookieName string, maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sid, maxAgeSeconds, "/", "", false, true)
		}
		c.Set(CtxSessionID, sid)
		c.Next()
	}
}
