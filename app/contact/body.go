// Package contact contains the address book handlers. Every handler
// runs behind the JWT middleware and only sees the caller's contacts.
package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type contactBody struct {
	Name        string     `json:"name" binding:"required,max=50"`
	Surname     string     `json:"surname" binding:"required,max=50"`
	Email       string     `json:"email" binding:"required,email,max=150"`
	PhoneNumber string     `json:"phone_number" binding:"required,max=20"`
	Birthday    model.Date `json:"birthday"`
	Description string     `json:"description" binding:"max=250"`
}

// bindContact reads the body shared by create and update. It aborts the
// request and returns false when the body is invalid.
func bindContact(c *gin.Context) (service.ContactFields, bool) {
	var data contactBody
	if err := c.ShouldBindJSON(&data); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, "Invalid request body")
		return service.ContactFields{}, false
	}

	if data.Birthday.IsZero() {
		httperr.Abort(c, http.StatusUnprocessableEntity, "Birthday is required")
		return service.ContactFields{}, false
	}

	return service.ContactFields{
		Name:        data.Name,
		Surname:     data.Surname,
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		Birthday:    data.Birthday,
		Description: data.Description,
	}, true
}

func owner(c *gin.Context) uint {
	return c.MustGet("user").(*model.User).ID
}

func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.Abort(c, http.StatusUnprocessableEntity, "Invalid contact id")
		return 0, false
	}

	return uint(id), true
}
