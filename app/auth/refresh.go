package auth

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/middleware"
	"bitwise74/contacts-api/pkg/security"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RefreshToken trades a refresh token for a new pair. A valid token that
// isn't the stored one was already used, so the session gets revoked.
func RefreshToken(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	raw, ok := middleware.BearerToken(c)
	if !ok {
		middleware.Unauthorized(c)
		return
	}

	email, err := d.Tokens.Verify(raw, security.ScopeRefresh)
	if err != nil {
		middleware.Unauthorized(c)
		return
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			middleware.Unauthorized(c)
			return
		}

		httperr.Internal(c, "Failed to look up token owner", err)
		return
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(*user.RefreshToken), []byte(raw)) != 1 {
		if err := d.Users.RotateRefreshToken(c.Request.Context(), user.ID, nil); err != nil {
			zap.L().Error("Failed to revoke refresh token", zap.Error(err), zap.String("requestID", requestID))
		}

		middleware.Unauthorized(c)
		return
	}

	pair, err := issuePair(c, d, user)
	if err != nil {
		httperr.Internal(c, "Failed to issue tokens", err)
		return
	}

	c.JSON(http.StatusOK, pair)
}
