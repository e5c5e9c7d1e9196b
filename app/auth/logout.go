package auth

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Logout(c *gin.Context, d *internal.Deps) {
	user := c.MustGet("user").(*model.User)

	if err := d.Users.RotateRefreshToken(c.Request.Context(), user.ID, nil); err != nil {
		httperr.Internal(c, "Failed to clear refresh token", err)
		return
	}

	c.Status(http.StatusNoContent)
}
