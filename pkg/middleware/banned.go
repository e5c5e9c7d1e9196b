package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewBannedIPMiddleware refuses every request coming from one of ips
func NewBannedIPMiddleware(ips []string) gin.HandlerFunc {
	banned := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		banned[ip] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := banned[c.ClientIP()]; ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "You are banned",
				"requestID": RequestID(c),
			})
			return
		}

		c.Next()
	}
}
