package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ByParams finds contacts by name, surname or email. Only the first
// provided parameter in that order is used.
func ByParams(c *gin.Context, d *internal.Deps) {
	filter := service.ResolveFilter(c.Query("name"), c.Query("surname"), c.Query("email"))

	contacts, err := d.Contacts.ListByField(c.Request.Context(), owner(c), filter)
	if err != nil {
		if errors.Is(err, service.ErrNoFilter) {
			httperr.Abort(c, http.StatusUnprocessableEntity, "Provide name, surname or email")
			return
		}

		httperr.Internal(c, "Failed to search contacts", err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}
