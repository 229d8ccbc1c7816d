package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgethub/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() (*fiber.App, *session.Store) {
	store := session.New()
	app := fiber.New()

	app.Post("/login", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set(middleware.SessionUserIDKey, uuid.New().String())
		return sess.Save()
	})

	app.Get("/protected", middleware.RequireSession(store, zap.NewNop()), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uuid.UUID)
		return c.SendString(userID.String())
	})

	return app, store
}

func TestRequireSessionUnauthenticated(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": "Authentication required"}`, string(body))
}

func TestRequireSessionAuthenticated(t *testing.T) {
	app, _ := newTestApp()

	loginResp, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	cookies := loginResp.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_, err = uuid.Parse(string(body))
	assert.NoError(t, err, "handler must see the session's user id")
}

func TestRequireSessionGarbageCookie(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "not-a-session"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
