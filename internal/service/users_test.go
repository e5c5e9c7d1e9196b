package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	ctx := context.Background()
	_, users := newTestServices(t)

	u := newTestUser(t, users, "peter@example.com")

	assert.NotZero(t, u.ID)
	assert.False(t, u.Confirmed)
	assert.NotEqual(t, "12345678", u.Password)
	assert.True(t, strings.HasPrefix(u.Password, "$argon2id$"))
	require.NotNil(t, u.Avatar)
	assert.Equal(t, GravatarURL("peter@example.com"), *u.Avatar)

	_, err := users.Create(ctx, UserFields{
		Username: "other",
		Email:    "peter@example.com",
		Password: "abcdefgh",
	})
	assert.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestGravatarURL(t *testing.T) {
	// Reference hash from the gravatar docs
	assert.Equal(t,
		"https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=identicon",
		GravatarURL("  MyEmailAddress@example.com "),
	)
}

func TestUserAuthenticate(t *testing.T) {
	ctx := context.Background()
	_, users := newTestServices(t)

	newTestUser(t, users, "peter@example.com")

	_, err := users.Authenticate(ctx, "peter@example.com", "12345678")
	assert.ErrorIs(t, err, ErrNotConfirmed, "unconfirmed accounts can't log in")

	require.NoError(t, users.SetConfirmed(ctx, "peter@example.com"))

	u, err := users.Authenticate(ctx, "peter@example.com", "12345678")
	require.NoError(t, err)
	assert.Equal(t, "peter@example.com", u.Email)

	_, err = users.Authenticate(ctx, "peter@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate(ctx, "nobody@example.com", "12345678")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserSetConfirmed(t *testing.T) {
	ctx := context.Background()
	_, users := newTestServices(t)

	newTestUser(t, users, "peter@example.com")

	require.NoError(t, users.SetConfirmed(ctx, "peter@example.com"))
	require.NoError(t, users.SetConfirmed(ctx, "peter@example.com"))

	u, err := users.FindByEmail(ctx, "peter@example.com")
	require.NoError(t, err)
	assert.True(t, u.Confirmed)

	assert.ErrorIs(t, users.SetConfirmed(ctx, "nobody@example.com"), ErrNotFound)
}

func TestUserRotateRefreshToken(t *testing.T) {
	ctx := context.Background()
	_, users := newTestServices(t)

	u := newTestUser(t, users, "peter@example.com")

	token := "refresh-token"
	require.NoError(t, users.RotateRefreshToken(ctx, u.ID, &token))

	got, err := users.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.NotNil(t, got.RefreshToken)
	assert.Equal(t, token, *got.RefreshToken)

	require.NoError(t, users.RotateRefreshToken(ctx, u.ID, nil))

	got, err = users.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Nil(t, got.RefreshToken)
}

func TestUserSetAvatar(t *testing.T) {
	ctx := context.Background()
	_, users := newTestServices(t)

	newTestUser(t, users, "peter@example.com")

	u, err := users.SetAvatar(ctx, "peter@example.com", "https://cdn.test/a.png")
	require.NoError(t, err)
	require.NotNil(t, u.Avatar)
	assert.Equal(t, "https://cdn.test/a.png", *u.Avatar)

	stored, err := users.FindByEmail(ctx, "peter@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/a.png", *stored.Avatar)

	_, err = users.SetAvatar(ctx, "nobody@example.com", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
