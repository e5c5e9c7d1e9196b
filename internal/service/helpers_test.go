package service

import (
	"bitwise74/contacts-api/config"
	"bitwise74/contacts-api/db"
	"bitwise74/contacts-api/internal/model"
	"bitwise74/contacts-api/pkg/security"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := db.New(config.Database{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	return d
}

func newTestUser(t *testing.T, users *UserService, email string) *model.User {
	t.Helper()

	u, err := users.Create(context.Background(), UserFields{
		Username: "user",
		Email:    email,
		Password: "12345678",
	})
	require.NoError(t, err)

	return u
}

func newTestServices(t *testing.T) (*ContactService, *UserService) {
	t.Helper()

	d := newTestDB(t)
	return NewContactService(d), NewUserService(d, security.NewLight())
}

func sampleFields(name string) ContactFields {
	return ContactFields{
		Name:        name,
		Surname:     "Parker",
		Email:       name + "@example.com",
		PhoneNumber: "1234567890",
		Birthday:    model.NewDate(2000, 3, 12),
		Description: "friendly neighbour",
	}
}
