package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/athletichub/athletichub/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireSession gates protected routes. Three observable states: while the
// session store has not resolved its first value the request waits (LOADING);
// a resolved session passes through with the identity attached (AUTHORIZED);
// no session redirects to the login view carrying the originally requested
// path (UNAUTHORIZED). The guard re-evaluates on every request, so a logout
// immediately locks protected paths again.
func RequireSession(store service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.WaitReady(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "session store not ready",
			})
			return
		}

		sid := c.GetString(CtxSessionID)
		sess, ok := store.Current(sid)
		if !ok || sess.Identity == nil {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   "authentication required",
				})
				return
			}
			c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		c.Set(CtxIdentity, sess.Identity)
		c.Next()
	}
}
