package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Fetch(c *gin.Context, d *internal.Deps) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	contact, err := d.Contacts.Get(c.Request.Context(), owner(c), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httperr.Abort(c, http.StatusNotFound, "Contact not found")
			return
		}

		httperr.Internal(c, "Failed to fetch contact", err)
		return
	}

	c.JSON(http.StatusOK, contact)
}
