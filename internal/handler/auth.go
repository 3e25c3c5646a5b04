package handler

import (
    "context"      // provides context with cancellation for DB calls
    "database/sql" // SQL database interactions
    "net/http"     // HTTP status codes and primitives
    "strings"      // string manipulation utilities
    "time"         // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/pharmaops/pharmacy-signoff/internal/config"     // app configuration
    "github.com/pharmaops/pharmacy-signoff/internal/middleware" // session cookie helpers
    "github.com/pharmaops/pharmacy-signoff/internal/repository" // DB repositories
    "github.com/pharmaops/pharmacy-signoff/internal/utils"      // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *repository.AccountRepo
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a}
}

// credentialsReq is bound from either a JSON body or the login form.
type credentialsReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// CreateAccount handles POST /createaccount. Signup is restricted to the
// configured allow-list; a disallowed email is rejected before any
// credential is stored. On success the browser is sent to the login page.
func (h *AuthHandler) CreateAccount(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if !h.Cfg.EmailAllowed(req.Email) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "email not permitted to register"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Accounts.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Login handles POST /login: verify credentials, establish the session
// cookie, and send the browser to the app. Unknown email and wrong
// password produce the same response so the endpoint cannot be used to
// enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(a.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, a.ID, a.Email, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	c.SetCookie(middleware.NewSessionCookie(tok))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Logout handles GET /logout: clear the session cookie and return to the
// login page. The token itself simply expires; nothing is stored
// server-side.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.ClearSessionCookie())
	return c.Redirect(http.StatusSeeOther, "/login")
}
