package app

import (
	"bitwise74/contacts-api/config"
	"bitwise74/contacts-api/db"
	"bitwise74/contacts-api/internal"
	"bitwise74/contacts-api/internal/service"
	"bitwise74/contacts-api/pkg/ratelimit"
	"bitwise74/contacts-api/pkg/security"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureMailer remembers the last confirmation token per address
type captureMailer struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (m *captureMailer) SendConfirmation(_ context.Context, to, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tokens[to] = token
	return nil
}

func (m *captureMailer) token(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tokens[to]
}

type memoryStore struct{}

func (memoryStore) PutAvatar(_ context.Context, key, _ string, _ []byte) (string, error) {
	return "https://cdn.test/" + key, nil
}

type testApp struct {
	t      *testing.T
	deps   *internal.Deps
	router *gin.Engine
	mailer *captureMailer
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.App{Env: "development", LogLevel: "error"},
		Host: config.Host{Port: 8080, Domain: "localhost:8080", CORS: []string{"*"}},
		JWT: config.JWT{
			Secret:     "test-secret",
			Algorithm:  "HS256",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: time.Hour,
			ConfirmTTL: time.Hour,
		},
		Security: config.Security{BannedIPs: []string{"192.168.255.1"}},
	}
}

type appOpt func(*internal.Deps)

func withLimiter(l ratelimit.Limiter) appOpt {
	return func(d *internal.Deps) { d.Limiter = l }
}

func withAvatars() appOpt {
	return func(d *internal.Deps) {
		d.Avatars = &service.AvatarService{Store: memoryStore{}, Users: d.Users, Prefix: "avatars"}
	}
}

func withProduction() appOpt {
	return func(d *internal.Deps) { d.Config.App.Env = "production" }
}

func newTestApp(t *testing.T, opts ...appOpt) *testApp {
	t.Helper()

	cfg := testConfig()
	cfg.Database = config.Database{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "test.db")}

	conn, err := db.New(cfg.Database)
	require.NoError(t, err)

	tokens, err := security.NewTokenManager(security.TokenOpts{
		Secret:     cfg.JWT.Secret,
		Algorithm:  cfg.JWT.Algorithm,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		ConfirmTTL: cfg.JWT.ConfirmTTL,
	})
	require.NoError(t, err)

	argon := security.NewLight()
	mailer := &captureMailer{tokens: map[string]string{}}

	d := &internal.Deps{
		Config:   cfg,
		DB:       conn,
		Argon:    argon,
		Tokens:   tokens,
		Users:    service.NewUserService(conn, argon),
		Contacts: service.NewContactService(conn),
		Mailer:   mailer,
	}

	for _, o := range opts {
		o(d)
	}

	return &testApp{t: t, deps: d, router: NewRouter(d), mailer: mailer}
}

type request struct {
	method string
	path   string
	body   any
	token  string
	// Sent as is when set, body is ignored
	raw         io.Reader
	contentType string
	remoteAddr  string
}

func (a *testApp) do(r request) *httptest.ResponseRecorder {
	a.t.Helper()

	return a.doWithHeaders(r, nil)
}

func (a *testApp) doWithHeaders(r request, headers map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()

	body := r.raw
	if body == nil && r.body != nil {
		b, err := json.Marshal(r.body)
		require.NoError(a.t, err)
		body = bytes.NewReader(b)
		if r.contentType == "" {
			r.contentType = "application/json"
		}
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.remoteAddr != "" {
		req.RemoteAddr = r.remoteAddr
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

type tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// signupAndLogin creates a confirmed account and returns its tokens
func (a *testApp) signupAndLogin(email string) tokens {
	a.t.Helper()

	w := a.do(request{method: http.MethodPost, path: "/api/auth/signup", body: map[string]string{
		"username": "peter",
		"email":    email,
		"password": "12345678",
	}})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(request{method: http.MethodGet, path: "/api/auth/confirmed_email/" + a.mailer.token(email)})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(request{method: http.MethodPost, path: "/api/auth/login", body: map[string]string{
		"username": email,
		"password": "12345678",
	}})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())

	return decode[tokens](a.t, w)
}
