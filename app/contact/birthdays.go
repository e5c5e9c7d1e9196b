package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Birthdays lists contacts with a birthday in the next :days days
func Birthdays(c *gin.Context, d *internal.Deps) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, "days must be a number")
		return
	}

	contacts, err := d.Contacts.UpcomingBirthdays(c.Request.Context(), owner(c), days)
	if err != nil {
		if errors.Is(err, service.ErrNegativeWindow) {
			httperr.Abort(c, http.StatusUnprocessableEntity, "days can't be negative")
			return
		}

		httperr.Internal(c, "Failed to fetch upcoming birthdays", err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}
