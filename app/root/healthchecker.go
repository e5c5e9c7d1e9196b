package root

import (
	"bitwise74/contacts-api/app/httperr"
	"bitwise74/contacts-api/db"
	"bitwise74/contacts-api/internal"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Healthchecker reports whether the database answers queries
func Healthchecker(c *gin.Context, d *internal.Deps) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := db.Ping(ctx, d.DB); err != nil {
		httperr.Internal(c, "Database health check failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the contacts API!",
	})
}
