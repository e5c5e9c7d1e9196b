package auth

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// OAuth2 password flow field names, username carries the email
type loginBody struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func Login(c *gin.Context, d *internal.Deps) {
	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	user, err := d.Users.Authenticate(c.Request.Context(), data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			httperr.Abort(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrNotConfirmed):
			httperr.Abort(c, http.StatusUnauthorized, "Email not confirmed")
		default:
			httperr.Internal(c, "Failed to authenticate user", err)
		}
		return
	}

	pair, err := issuePair(c, d, user)
	if err != nil {
		httperr.Internal(c, "Failed to issue tokens", err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// issuePair signs a new access/refresh pair and stores the refresh token
// so older ones stop working
func issuePair(c *gin.Context, d *internal.Deps, user *model.User) (*tokenPair, error) {
	access, err := d.Tokens.IssueAccess(user.Email)
	if err != nil {
		return nil, err
	}

	refresh, err := d.Tokens.IssueRefresh(user.Email)
	if err != nil {
		return nil, err
	}

	if err := d.Users.RotateRefreshToken(c.Request.Context(), user.ID, &refresh); err != nil {
		return nil, err
	}

	return &tokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
