// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validEnvs      = []string{"development", "production"}
	validDrivers   = []string{"postgres", "sqlite"}
	validJWTAlgs   = []string{"HS256", "HS384", "HS512"}
)

type App struct {
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type Host struct {
	Port   int      `mapstructure:"port"`
	Domain string   `mapstructure:"domain"`
	CORS   []string `mapstructure:"cors"`
	SSL    bool     `mapstructure:"ssl_enabled"`
}

type Database struct {
	Driver string `mapstructure:"driver"`
	// For sqlite this is the path of the database file
	DSN string `mapstructure:"dsn"`
}

type JWT struct {
	Secret     string        `mapstructure:"secret"`
	Algorithm  string        `mapstructure:"algorithm"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
	ConfirmTTL time.Duration `mapstructure:"confirm_ttl"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimit struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

type Mail struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Sender   string `mapstructure:"sender"`
	Password string `mapstructure:"password"`
}

type AWS struct {
	Enabled         bool   `mapstructure:"enabled"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	// Optional, used for S3 compatible storage (R2, MinIO)
	Endpoint string `mapstructure:"endpoint"`
	// Base URL avatars are served from. Defaults to the bucket's virtual host URL
	PublicURL    string `mapstructure:"public_url"`
	AvatarPrefix string `mapstructure:"avatar_prefix"`
}

type Security struct {
	BannedIPs []string `mapstructure:"banned_ips"`
}

// Config is loaded once at startup and passed around read-only
type Config struct {
	App       App       `mapstructure:"app"`
	Host      Host      `mapstructure:"host"`
	Database  Database  `mapstructure:"database"`
	JWT       JWT       `mapstructure:"jwt"`
	Redis     Redis     `mapstructure:"redis"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Mail      Mail      `mapstructure:"mail"`
	AWS       AWS       `mapstructure:"aws"`
	Security  Security  `mapstructure:"security"`
}

// Production reports whether the app runs with app.env set to production
func (c *Config) Production() bool {
	return c.App.Env == "production"
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Load reads the config file at path, applies env overrides and defaults
// and validates the result. A missing config file is fine as long as the
// environment provides everything required.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	//
	// ENVS
	//
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT")
	v.BindEnv("host.domain", "HOST_DOMAIN")
	v.BindEnv("host.cors", "HOST_CORS")
	v.BindEnv("host.ssl_enabled", "HOST_SSL_ENABLED")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")

	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.algorithm", "JWT_ALGORITHM")

	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")

	v.BindEnv("mail.enabled", "MAIL_ENABLED")
	v.BindEnv("mail.host", "MAIL_HOST")
	v.BindEnv("mail.port", "MAIL_PORT")
	v.BindEnv("mail.sender", "MAIL_SENDER")
	v.BindEnv("mail.password", "MAIL_PASSWORD")

	v.BindEnv("aws.enabled", "AWS_ENABLED")
	v.BindEnv("aws.access_key", "AWS_ACCESS_KEY")
	v.BindEnv("aws.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("aws.bucket", "AWS_BUCKET")
	v.BindEnv("aws.endpoint", "AWS_ENDPOINT")
	v.BindEnv("aws.public_url", "AWS_PUBLIC_URL")

	v.BindEnv("security.banned_ips", "SECURITY_BANNED_IPS")

	//
	// Defaults
	//
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost:8080")
	v.SetDefault("host.cors", []string{"*"})
	v.SetDefault("host.ssl_enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db")

	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.access_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.confirm_ttl", 24*time.Hour)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 2)
	v.SetDefault("rate_limit.window", 5*time.Second)

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.port", 465)

	v.SetDefault("aws.enabled", false)
	v.SetDefault("aws.avatar_prefix", "avatars")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file, %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config, %w", err)
	}

	// Comma separated lists coming from env vars arrive as a single element
	c.Host.CORS = splitList(c.Host.CORS)
	c.Security.BannedIPs = splitList(c.Security.BannedIPs)

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) validate() error {
	if !slices.Contains(validLogLevels, c.App.LogLevel) {
		return errors.New("invalid log level provided")
	}

	if !slices.Contains(validEnvs, c.App.Env) {
		return errors.New("invalid app env provided")
	}

	if c.Host.Port <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, c.Database.Driver) {
		return errors.New("invalid database driver provided")
	}

	if c.Database.DSN == "" {
		return errors.New("database dsn can't be empty")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("no JWT secret set. Set jwt.secret in config.toml or the JWT_SECRET env var, for example:\n\n%s", genSecret())
	}

	if !slices.Contains(validJWTAlgs, c.JWT.Algorithm) {
		return errors.New("invalid jwt algorithm provided")
	}

	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 || c.JWT.ConfirmTTL <= 0 {
		return errors.New("jwt token lifetimes must be bigger than 0")
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return errors.New("rate_limit.requests must be bigger than 0")
		}

		if c.RateLimit.Window <= 0 {
			return errors.New("rate_limit.window must be bigger than 0")
		}
	}

	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			return errors.New("mail host can't be empty")
		}
		if c.Mail.Sender == "" {
			return errors.New("mail sender can't be empty")
		}
		if c.Mail.Port <= 0 {
			return errors.New("invalid mail port provided")
		}
	}

	if c.AWS.Enabled {
		if c.AWS.AccessKey == "" {
			return errors.New("aws access key can't be empty")
		}
		if c.AWS.SecretAccessKey == "" {
			return errors.New("aws secret access key can't be empty")
		}
		if c.AWS.Bucket == "" {
			return errors.New("bucket can't be empty")
		}
		if c.AWS.Region == "" {
			return errors.New("aws region can't be empty")
		}
	}

	for _, ip := range c.Security.BannedIPs {
		if net.ParseIP(ip) == nil {
			return fmt.Errorf("invalid banned ip %q", ip)
		}
	}

	return nil
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}

	return out
}
