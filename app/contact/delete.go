package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func Delete(c *gin.Context, d *internal.Deps) {
	id, ok := contactID(c)
	if !ok {
		return
	}

	if _, err := d.Contacts.Delete(c.Request.Context(), owner(c), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			httperr.Abort(c, http.StatusNotFound, "Contact not found")
			return
		}

		httperr.Internal(c, "Failed to delete contact", err)
		return
	}

	c.Status(http.StatusNoContent)
}
