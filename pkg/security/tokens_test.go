package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()

	m, err := NewTokenManager(TokenOpts{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		ConfirmTTL: 24 * time.Hour,
	})
	require.NoError(t, err)

	return m
}

func TestNewTokenManagerRejectsBadOpts(t *testing.T) {
	_, err := NewTokenManager(TokenOpts{Algorithm: "HS256"})
	assert.Error(t, err)

	_, err = NewTokenManager(TokenOpts{Secret: "s", Algorithm: "RS256"})
	assert.Error(t, err)

	_, err = NewTokenManager(TokenOpts{Secret: "s", Algorithm: "none"})
	assert.Error(t, err)
}

func TestTokenScopes(t *testing.T) {
	m := newTestManager(t)

	access, err := m.IssueAccess("spiderman@example.com")
	require.NoError(t, err)
	refresh, err := m.IssueRefresh("spiderman@example.com")
	require.NoError(t, err)
	confirm, err := m.IssueConfirmation("spiderman@example.com")
	require.NoError(t, err)

	email, err := m.Verify(access, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, "spiderman@example.com", email)

	email, err = m.Verify(refresh, ScopeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "spiderman@example.com", email)

	email, err = m.Verify(confirm, ScopeEmail)
	require.NoError(t, err)
	assert.Equal(t, "spiderman@example.com", email)

	// Every token is only good for its own purpose
	_, err = m.Verify(refresh, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify(access, ScopeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify(confirm, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.Verify(access, ScopeEmail)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensAreUnique(t *testing.T) {
	m := newTestManager(t)

	a, err := m.IssueRefresh("a@example.com")
	require.NoError(t, err)
	b, err := m.IssueRefresh("a@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestTokenExpiry(t *testing.T) {
	m := newTestManager(t)

	issuedAt := time.Now()
	m.now = func() time.Time { return issuedAt }

	token, err := m.IssueAccess("a@example.com")
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(14 * time.Minute) }
	_, err = m.Verify(token, ScopeAccess)
	assert.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(16 * time.Minute) }
	_, err = m.Verify(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsForeignSignatures(t *testing.T) {
	m := newTestManager(t)

	other, err := NewTokenManager(TokenOpts{
		Secret:     "another-secret",
		Algorithm:  "HS256",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Minute,
		ConfirmTTL: time.Minute,
	})
	require.NoError(t, err)

	token, err := other.IssueAccess("a@example.com")
	require.NoError(t, err)

	_, err = m.Verify(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not.a.jwt", ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager(t)

	t384 := jwt.NewWithClaims(jwt.SigningMethodHS384, Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	raw, err := t384.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(raw, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRequiresExpiry(t *testing.T) {
	m := newTestManager(t)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Scope:            ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@example.com"},
	})
	raw, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(raw, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
