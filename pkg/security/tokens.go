package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Scope tells apart the three kinds of tokens we sign. A token is only
// ever accepted where its own scope is expected.
type Scope string

const (
	ScopeAccess  Scope = "access_token"
	ScopeRefresh Scope = "refresh_token"
	ScopeEmail   Scope = "email_token"
)

// ErrInvalidToken covers every reason a token gets rejected. Callers
// must not tell the client which one it was.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
	confirmTTL time.Duration

	// Overridable in tests
	now func() time.Time
}

type TokenOpts struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ConfirmTTL time.Duration
}

func NewTokenManager(o TokenOpts) (*TokenManager, error) {
	if o.Secret == "" {
		return nil, errors.New("no token secret provided")
	}

	method := jwt.GetSigningMethod(o.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", o.Algorithm)
	}

	return &TokenManager{
		secret:     []byte(o.Secret),
		method:     method,
		accessTTL:  o.AccessTTL,
		refreshTTL: o.RefreshTTL,
		confirmTTL: o.ConfirmTTL,
		now:        time.Now,
	}, nil
}

func (m *TokenManager) IssueAccess(email string) (string, error) {
	return m.issue(email, ScopeAccess, m.accessTTL)
}

func (m *TokenManager) IssueRefresh(email string) (string, error) {
	return m.issue(email, ScopeRefresh, m.refreshTTL)
}

func (m *TokenManager) IssueConfirmation(email string) (string, error) {
	return m.issue(email, ScopeEmail, m.confirmTTL)
}

func (m *TokenManager) issue(email string, scope Scope, ttl time.Duration) (string, error) {
	now := m.now()

	t := jwt.NewWithClaims(m.method, Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			// Keeps two tokens minted in the same second apart
			ID: uuid.NewString(),
		},
	})

	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s, %w", scope, err)
	}

	return signed, nil
}

// Verify checks the signature, expiry and scope of raw and returns the
// email it was issued for
func (m *TokenManager) Verify(raw string, scope Scope) (string, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{m.method.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w, %w", ErrInvalidToken, err)
	}

	if claims.Scope != scope {
		return "", fmt.Errorf("%w, scope %q where %q was expected", ErrInvalidToken, claims.Scope, scope)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w, no subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
