package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmaops/pharmacy-signoff/internal/config"
	"github.com/pharmaops/pharmacy-signoff/internal/middleware"
	"github.com/pharmaops/pharmacy-signoff/internal/repository"
	"github.com/pharmaops/pharmacy-signoff/internal/testutil"
)

func testConfig() config.Config {
	return config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTLMin: 30,
		BcryptCost:    4, // minimum cost keeps the tests fast
		AllowedEmails: []string{"manager@pharmacy.test", "deputy@pharmacy.test"},
	}
}

// postJSON runs a handler against a JSON request and returns the recorder.
func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestCreateAccountRejectsDisallowedEmail(t *testing.T) {
	db := testutil.OpenTestDB(t, "auth_allowlist")
	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	rec := postJSON(t, h.CreateAccount, "/createaccount",
		`{"email":"outsider@example.com","password":"whatever"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Nothing was stored.
	_, err := h.Accounts.GetByEmail(context.Background(), "outsider@example.com")
	assert.Error(t, err)
}

func TestCreateAccountAllowedEmail(t *testing.T) {
	db := testutil.OpenTestDB(t, "auth_signup")
	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	rec := postJSON(t, h.CreateAccount, "/createaccount",
		`{"email":"Manager@Pharmacy.Test","password":"s3cret"}`)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	a, err := h.Accounts.GetByEmail(context.Background(), "manager@pharmacy.test")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", a.PasswordHash) // stored hashed, never plain

	// Same email again conflicts.
	rec = postJSON(t, h.CreateAccount, "/createaccount",
		`{"email":"manager@pharmacy.test","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.OpenTestDB(t, "auth_badpass")
	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	postJSON(t, h.CreateAccount, "/createaccount",
		`{"email":"manager@pharmacy.test","password":"s3cret"}`)

	rec := postJSON(t, h.Login, "/login",
		`{"email":"manager@pharmacy.test","password":"not-it"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec), "failed login must not establish a session")
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	db := testutil.OpenTestDB(t, "auth_unknown")
	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	rec := postJSON(t, h.Login, "/login",
		`{"email":"ghost@pharmacy.test","password":"whatever"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Same body as the wrong-password case: no account enumeration.
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	db := testutil.OpenTestDB(t, "auth_login")
	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	postJSON(t, h.CreateAccount, "/createaccount",
		`{"email":"manager@pharmacy.test","password":"s3cret"}`)

	rec := postJSON(t, h.Login, "/login",
		`{"email":"manager@pharmacy.test","password":"s3cret"}`)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLogoutClearsCookie(t *testing.T) {
	db := testutil.OpenTestDB(t, "auth_logout")
	h := NewAuthHandler(testConfig(), repository.NewAccountRepo(db))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
