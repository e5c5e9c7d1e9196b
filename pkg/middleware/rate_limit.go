package middleware

import (
	"bitwise74/contacts-api/pkg/ratelimit"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitKey identifies a caller on one route
func RateLimitKey(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}

	return c.ClientIP() + ":" + c.Request.Method + " " + route
}

// NewRateLimitMiddleware rejects callers over the limit with 429. When
// the limiter itself fails the request goes through. A nil limiter
// disables limiting.
func NewRateLimitMiddleware(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		requestID := RequestID(c)

		res, err := l.Allow(c.Request.Context(), RateLimitKey(c))
		if err != nil {
			zap.L().Warn("Rate limiter unavailable", zap.Error(err), zap.String("requestID", requestID))
			c.Next()
			return
		}

		if !res.Allowed {
			secs := max(int(math.Ceil(res.RetryAfter.Seconds())), 1)

			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     "Too many requests",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}
