package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campdir/campdir/internal/logging"
	"github.com/campdir/campdir/internal/ratelimit"
	"github.com/campdir/campdir/internal/server/auth"
)

const userIDKey = "userID"

// currentUserID returns the authenticated identity set by RequireAuth.
// Routes that call it are always behind the middleware, so a missing value
// is a routing bug, not a runtime condition.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// RequireAuth verifies the session token and stores the asserted user
// identity in the request context. The token is read from the Authorization
// header (Bearer scheme) first, then from the token cookie.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if v := c.GetHeader("Authorization"); strings.HasPrefix(v, "Bearer ") {
			token = strings.TrimPrefix(v, "Bearer ")
		} else if v, err := c.Cookie(tokenCookieName); err == nil {
			token = v
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authorized to access this route"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, h.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "not authorized to access this route"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RateLimit throttles requests per client IP. Only mounted on the public
// credential endpoints, where unauthenticated guessing is possible.
func RateLimit(l *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "too many requests"})
			return
		}
		c.Next()
	}
}

// RequestLogger records one structured line per request.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"client", c.ClientIP(),
		)
	}
}
