package middleware

import (
	"net/http"

	"backend/internal/app/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ctxUserKey = "authUser"

// Auth resolves the caller's session key (query param or X-Session-Key header)
// to a user and stores it on the request context. Credential checks and
// account management live in the auth subsystem; this only maps key to
// identity.
func Auth(sessionSvc session.Service, logger *zap.Logger) gin.HandlerFunc {
	sugar := logger.Sugar()

	return func(c *gin.Context) {
		sessionKey := c.Query("session_key")
		if sessionKey == "" {
			sessionKey = c.GetHeader("X-Session-Key")
		}
		if sessionKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session_key is required"})
			return
		}

		user, err := sessionSvc.GetUserBySessionKey(sessionKey)
		if err != nil {
			sugar.Warnw("Auth: session rejected", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Auth.
func CurrentUser(c *gin.Context) (*session.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*session.User)
	return user, ok
}
