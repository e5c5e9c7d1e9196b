package auth

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/validators"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type requestEmailBody struct {
	Email string `json:"email" binding:"required"`
}

// RequestEmail sends the confirmation mail again. Unknown addresses get
// the same answer as known ones.
func RequestEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data requestEmailBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := d.Users.FindByEmail(c.Request.Context(), data.Email)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		httperr.Internal(c, "Failed to look up user", err)
		return
	}

	if user != nil {
		if user.Confirmed {
			c.JSON(http.StatusOK, gin.H{
				"message": "Your email is already confirmed",
			})
			return
		}

		if err := sendConfirmation(c, d, user.Email, user.Username); err != nil {
			zap.L().Error("Failed to send confirmation mail", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Check your email for confirmation",
	})
}
