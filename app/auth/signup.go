// Package auth contains the account and session handlers
package auth

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/validators"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type signupBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Signup(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data signupBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	data.Username = strings.TrimSpace(data.Username)
	data.Email = strings.TrimSpace(data.Email)

	for _, err := range []error{
		validators.UsernameValidator(data.Username),
		validators.EmailValidator(data.Email),
		validators.PasswordValidator(data.Password),
	} {
		if err != nil {
			httperr.Abort(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	user, err := d.Users.Create(c.Request.Context(), service.UserFields{
		Username: data.Username,
		Email:    data.Email,
		Password: data.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicateAccount) {
			httperr.Abort(c, http.StatusConflict, "Account already exists")
			return
		}

		httperr.Internal(c, "Failed to create user", err)
		return
	}

	// The account exists at this point, a failed mail can be retried
	// through request_email
	if err := sendConfirmation(c, d, user.Email, user.Username); err != nil {
		zap.L().Error("Failed to send confirmation mail", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusCreated, user)
}

func sendConfirmation(c *gin.Context, d *internal.Deps, email, username string) error {
	token, err := d.Tokens.IssueConfirmation(email)
	if err != nil {
		return err
	}

	return d.Mailer.SendConfirmation(c.Request.Context(), email, username, token)
}
