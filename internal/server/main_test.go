package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/oykukmnGlad/ROOTEAM/internal/config"
	"github.com/oykukmnGlad/ROOTEAM/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-with-at-least-32-characters"

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		Env:             "test",
		DBDriver:        "sqlite",
		DBPath:          ":memory:",
		JWTSecret:       testJWTSecret,
		SessionTTLHours: 1,
	}
}

// newTestApp builds a server over a private in-memory database.
func newTestApp(t *testing.T, redisClient *redis.Client) (*Server, *fiber.App) {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))
	t.Cleanup(func() { _ = database.Close(db) })

	s, err := NewServerWithDeps(testConfig(), db, redisClient)
	require.NoError(t, err)
	return s, s.App()
}

// browser replays cookies between requests like a user agent would.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	return &browser{t: t, app: app, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)

	for _, ck := range resp.Cookies() {
		expired := !ck.Expires.IsZero() && ck.Expires.Before(time.Now())
		if ck.Value == "" || ck.MaxAge < 0 || expired {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck.Value
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) postForm(path string, form url.Values) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return b.do(req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// apiRequest sends a JSON request with an optional bearer token.
func apiRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}
