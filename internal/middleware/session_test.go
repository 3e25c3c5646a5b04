package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaops/pharmacy-signoff/internal/utils"
)

const testSecret = "test-secret"

func runGated(t *testing.T, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h := SessionAuth(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "through")
	})
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestSessionAuthRedirectsWithoutCookie(t *testing.T) {
	rec := runGated(t, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionAuthRedirectsOnBadToken(t *testing.T) {
	rec := runGated(t, &http.Cookie{Name: SessionCookieName, Value: "tampered"})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSessionAuthPassesValidCookie(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 7, "manager@pharmacy.test", 30)
	require.NoError(t, err)

	rec := runGated(t, NewSessionCookie(tok))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "through", rec.Body.String())
}

func TestSessionAuthInjectsIdentity(t *testing.T) {
	tok, err := utils.NewSessionToken(testSecret, 7, "manager@pharmacy.test", 30)
	require.NoError(t, err)

	e := echo.New()
	var gotID any
	var gotEmail any
	h := SessionAuth(testSecret)(func(c echo.Context) error {
		gotID = c.Get("user_id")
		gotEmail = c.Get("email")
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	req.AddCookie(NewSessionCookie(tok))
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	assert.Equal(t, uint64(7), gotID)
	assert.Equal(t, "manager@pharmacy.test", gotEmail)
}
