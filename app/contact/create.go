package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Create(c *gin.Context, d *internal.Deps) {
	fields, ok := bindContact(c)
	if !ok {
		return
	}

	contact, err := d.Contacts.Create(c.Request.Context(), owner(c), fields)
	if err != nil {
		httperr.Internal(c, "Failed to create contact", err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}
