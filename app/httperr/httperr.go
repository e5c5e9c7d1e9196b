// Package httperr writes the error responses shared by every handler
package httperr

import (
	"bitwise74/contacts-api/pkg/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Abort stops the chain with a short human readable error
func Abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{
		"error":     msg,
		"requestID": middleware.RequestID(c),
	})
}

// Internal hides err from the client and logs it together with the
// request id
func Internal(c *gin.Context, logMsg string, err error) {
	requestID := middleware.RequestID(c)

	Abort(c, http.StatusInternalServerError, "Internal server error")
	zap.L().Error(logMsg, zap.Error(err), zap.String("requestID", requestID))
}
