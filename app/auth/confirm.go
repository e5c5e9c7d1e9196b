package auth

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/security"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConfirmedEmail redeems the token sent by mail
func ConfirmedEmail(c *gin.Context, d *internal.Deps) {
	email, err := d.Tokens.Verify(c.Param("token"), security.ScopeEmail)
	if err != nil {
		httperr.Abort(c, http.StatusBadRequest, "Verification error")
		return
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httperr.Abort(c, http.StatusBadRequest, "Verification error")
			return
		}

		httperr.Internal(c, "Failed to look up user", err)
		return
	}

	if user.Confirmed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Your email is already confirmed",
		})
		return
	}

	if err := d.Users.SetConfirmed(c.Request.Context(), email); err != nil {
		httperr.Internal(c, "Failed to confirm email", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email confirmed",
	})
}
