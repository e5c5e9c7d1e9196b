package internal

import (
	"bitwise74/contacts-api/config"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/ratelimit"
	"bitwise74/contacts-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Argon    *security.ArgonHash
	Tokens   *security.TokenManager
	Users    *service.UserService
	Contacts *service.ContactService
	// nil when aws.enabled is false
	Avatars *service.AvatarService
	Mailer  service.Mailer
	// nil disables rate limiting
	Limiter ratelimit.Limiter
}
