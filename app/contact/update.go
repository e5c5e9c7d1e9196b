package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Update replaces every field of a contact
func Update(c *gin.Context, d *internal.Deps) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	fields, ok := bindContact(c)
	if !ok {
		return
	}

	contact, err := d.Contacts.Update(c.Request.Context(), owner(c), id, fields)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httperr.Abort(c, http.StatusNotFound, "Contact not found")
			return
		}

		httperr.Internal(c, "Failed to update contact", err)
		return
	}

	c.JSON(http.StatusOK, contact)
}
