package user

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/middleware"
	"bitwise74/contacts-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxAvatarSize caps both the uploaded file and the request body
const MaxAvatarSize = 5 << 20

// Avatar replaces the account avatar with the uploaded image
func Avatar(c *gin.Context, d *internal.Deps) {
	if d.Avatars == nil {
		httperr.Abort(c, http.StatusServiceUnavailable, "Avatar storage is not configured")
		return
	}

	user := c.MustGet("user").(*model.User)

	header, err := c.FormFile("file")
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			httperr.Abort(c, http.StatusRequestEntityTooLarge, "Request body size exceeds limit")
			return
		}

		httperr.Abort(c, http.StatusUnprocessableEntity, "No file provided")
		return
	}

	if err := validators.ImageValidator(header, MaxAvatarSize); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	f, err := header.Open()
	if err != nil {
		httperr.Internal(c, "Failed to open uploaded file", err)
		return
	}
	defer f.Close()

	updated, err := d.Avatars.Upload(c.Request.Context(), user.Email, f)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) {
			httperr.Abort(c, http.StatusUnprocessableEntity, "File is not a valid image")
			return
		}

		httperr.Internal(c, "Failed to update avatar", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
