// Package db opens the gorm connection used by the whole app
package db

import (
	"bitwise74/contacts-api/config"
	"bitwise74/contacts-api/internal/model"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(c config.Database) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch c.Driver {
	case "postgres":
		dialector = postgres.Open(c.DSN)
	case "sqlite":
		dialector = sqlite.Open(c.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Unique violations come back as gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", c.Driver, err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Contact{}); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// CheckMounted refuses to let a containerised app create a fresh sqlite
// file. The host should instead mount it using volumes.
func CheckMounted(c config.Database) error {
	if c.Driver != "sqlite" || !inDocker() {
		return nil
	}

	if _, err := os.Stat(c.DSN); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to %s", c.DSN)
	}

	return nil
}

func inDocker() bool {
	_, err := os.Stat("/.dockerenv")
	return err == nil
}

// Ping runs a trivial query to make sure the database answers
func Ping(ctx context.Context, d *gorm.DB) error {
	var one int
	if err := d.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return err
	}

	if one != 1 {
		return errors.New("database is not configured correctly")
	}

	return nil
}
