package app

import (
	"bitwise74/contacts-api/app/auth"
	"bitwise74/contacts-api/app/contact"
	"bitwise74/contacts-api/app/root"
	"bitwise74/contacts-api/app/user"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/pkg/middleware"
	"slices"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var store = persist.NewMemoryStore(time.Minute)

// NewRouter registers every route on a fresh engine
func NewRouter(d *internal.Deps) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(corsConfig(d.Config.Host.CORS)),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	if d.Config.Production() {
		router.Use(middleware.NewBannedIPMiddleware(d.Config.Security.BannedIPs))
	}

	router.HandleMethodNotAllowed = true
	router.MaxMultipartMemory = user.MaxAvatarSize

	jwt := middleware.NewJWTMiddleware(d.Tokens, d.Users)
	limited := middleware.NewRateLimitMiddleware(d.Limiter)

	// GET /				-> Landing page
	router.GET("/", cacheFor(5*60), root.Index)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/healthchecker	-> Checks if the database answers
		main.GET("/healthchecker", func(c *gin.Context) { root.Healthchecker(c, d) })
	}

	a := main.Group("/auth")
	{
		// POST /api/auth/signup		-> Registers a new user and sends the confirmation mail
		a.POST("/signup", func(c *gin.Context) { auth.Signup(c, d) })

		// POST /api/auth/login		-> Returns an access and refresh token pair
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/refresh_token	-> Trades a refresh token for a new pair
		a.GET("/refresh_token", func(c *gin.Context) { auth.RefreshToken(c, d) })

		// POST /api/auth/logout		-> Revokes the stored refresh token
		a.POST("/logout", jwt, func(c *gin.Context) { auth.Logout(c, d) })

		// GET /api/auth/confirmed_email/:token	-> Confirms an email address
		a.GET("/confirmed_email/:token", func(c *gin.Context) { auth.ConfirmedEmail(c, d) })

		// POST /api/auth/request_email	-> Sends the confirmation mail again
		a.POST("/request_email", func(c *gin.Context) { auth.RequestEmail(c, d) })
	}

	u := main.Group("/users", jwt, limited)
	{
		// GET /api/users/me		-> Returns the logged in user
		u.GET("/me", func(c *gin.Context) { user.Me(c, d) })

		// PATCH /api/users/avatar	-> Replaces the user's avatar
		u.PATCH("/avatar", middleware.BodySizeLimiter(user.MaxAvatarSize+1<<20), func(c *gin.Context) { user.Avatar(c, d) })
	}

	ct := main.Group("/contacts", jwt, limited)
	{
		// GET /api/contacts		-> Lists contacts, paged with limit and offset
		ct.GET("", func(c *gin.Context) { contact.List(c, d) })

		// GET /api/contacts/birthday/:days	-> Contacts with a birthday in the next days
		ct.GET("/birthday/:days", func(c *gin.Context) { contact.Birthdays(c, d) })

		// GET /api/contacts/by_params	-> Finds contacts by name, surname or email
		ct.GET("/by_params", func(c *gin.Context) { contact.ByParams(c, d) })

		// GET /api/contacts/:id		-> Returns a single contact
		ct.GET("/:id", func(c *gin.Context) { contact.Fetch(c, d) })

		// POST /api/contacts		-> Creates a contact
		ct.POST("", func(c *gin.Context) { contact.Create(c, d) })

		// PUT /api/contacts/:id		-> Replaces a contact
		ct.PUT("/:id", func(c *gin.Context) { contact.Update(c, d) })

		// DELETE /api/contacts/:id	-> Deletes a contact
		ct.DELETE("/:id", func(c *gin.Context) { contact.Delete(c, d) })
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}

	return c
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
