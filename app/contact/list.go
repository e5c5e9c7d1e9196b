package contact

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

type listQuery struct {
	Limit  int `form:"limit,default=10" binding:"min=10,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

func List(c *gin.Context, d *internal.Deps) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Abort(c, http.StatusUnprocessableEntity, "limit must be between 10 and 500 and offset can't be negative")
		return
	}

	contacts, err := d.Contacts.List(c.Request.Context(), owner(c), q.Limit, q.Offset)
	if err != nil {
		httperr.Internal(c, "Failed to list contacts", err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}
