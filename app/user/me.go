// Package user contains the handlers for the logged in account
package user

import (
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Me(c *gin.Context, _ *internal.Deps) {
	c.JSON(http.StatusOK, c.MustGet("user").(*model.User))
}
