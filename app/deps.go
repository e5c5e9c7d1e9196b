package app

import (
	"bitwise74/contacts-api/aws"
	"bitwise74/contacts-api/config"
	"bitwise74/contacts-api/db"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/ratelimit"
	"bitwise74/contacts-api/pkg/security"
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewDeps connects to everything the handlers need
func NewDeps(ctx context.Context, cfg *config.Config) (*internal.Deps, error) {
	if err := db.CheckMounted(cfg.Database); err != nil {
		return nil, err
	}

	conn, err := db.New(cfg.Database)
	if err != nil {
		return nil, err
	}

	tokens, err := security.NewTokenManager(security.TokenOpts{
		Secret:     cfg.JWT.Secret,
		Algorithm:  cfg.JWT.Algorithm,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		ConfirmTTL: cfg.JWT.ConfirmTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager, %w", err)
	}

	argon := security.New()
	users := service.NewUserService(conn, argon)

	d := &internal.Deps{
		Config:   cfg,
		DB:       conn,
		Argon:    argon,
		Tokens:   tokens,
		Users:    users,
		Contacts: service.NewContactService(conn),
	}

	if cfg.Mail.Enabled {
		d.Mailer = service.NewSMTPMailer(cfg.Mail, cfg.Host)
	} else {
		zap.L().Warn("Mail disabled, confirmation links will only be logged")
		d.Mailer = service.LogMailer{BaseURL: service.BaseURL(cfg.Host)}
	}

	if cfg.AWS.Enabled {
		s3, err := aws.NewS3(ctx, cfg.AWS)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}

		d.Avatars = &service.AvatarService{
			Store:  s3,
			Users:  users,
			Prefix: cfg.AWS.AvatarPrefix,
		}
	} else {
		zap.L().Warn("AWS disabled, avatar uploads are unavailable")
	}

	d.Limiter, err = newLimiter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func newLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Limiter, error) {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return nil, nil
	}

	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemoryLimiter(rl.Requests, rl.Window), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis, %w", err)
	}

	return ratelimit.NewRedisLimiter(rdb, "ratelimit", rl.Requests, rl.Window), nil
}
