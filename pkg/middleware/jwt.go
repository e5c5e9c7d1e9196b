package middleware

import (
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/security"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(c *gin.Context) (string, bool) {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// Unauthorized aborts with the one response every credential failure gets
func Unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":     "Could not validate credentials",
		"requestID": RequestID(c),
	})
}

// NewJWTMiddleware only lets requests with a valid access token of an
// existing account through. The account is stored as user.
func NewJWTMiddleware(tokens *security.TokenManager, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := RequestID(c)

		raw, ok := BearerToken(c)
		if !ok {
			Unauthorized(c)
			return
		}

		email, err := tokens.Verify(raw, security.ScopeAccess)
		if err != nil {
			Unauthorized(c)
			return
		}

		user, err := users.FindByEmail(c.Request.Context(), email)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				Unauthorized(c)
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up token owner", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}
