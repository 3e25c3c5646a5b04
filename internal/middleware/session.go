package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // HTTP status codes for redirects
    "time"     // cookie expiry

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/pharmaops/pharmacy-signoff/internal/utils"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "pharmacy_session"

// SessionAuth returns an Echo middleware that validates the session cookie
// and injects the account ID and email into the request context.  The
// provided secret must match the one used when the cookie was issued at
// login.  Requests without a valid session are redirected to the login
// entry point rather than processed; this service fronts a browser UI, so
// a redirect is more useful than a bare 401.  Handlers behind this
// middleware read the caller via `c.Get("user_id")` and `c.Get("email")`.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(SessionCookieName)
            if err != nil || cookie.Value == "" {
                return c.Redirect(http.StatusSeeOther, "/login")
            }
            accountID, email, err := utils.ParseSessionToken(secret, cookie.Value)
            if err != nil {
                // Expired or tampered token: drop the cookie so the browser
                // does not keep resending it, then send the user to login.
                c.SetCookie(expiredSessionCookie())
                return c.Redirect(http.StatusSeeOther, "/login")
            }
            c.Set("user_id", accountID)
            c.Set("email", email)
            return next(c)
        }
    }
}

// NewSessionCookie wraps a signed session token in an HttpOnly cookie.
func NewSessionCookie(tok utils.SessionToken) *http.Cookie {
    return &http.Cookie{
        Name:     SessionCookieName,
        Value:    tok.Token,
        Path:     "/",
        Expires:  tok.Exp,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}

// expiredSessionCookie returns a cookie that clears the session in the
// browser. Used on logout and when an invalid token is seen.
func expiredSessionCookie() *http.Cookie {
    return &http.Cookie{
        Name:     SessionCookieName,
        Value:    "",
        Path:     "/",
        Expires:  time.Unix(0, 0),
        MaxAge:   -1,
        HttpOnly: true,
        SameSite: http.SameSiteLaxMode,
    }
}

// ClearSessionCookie exposes the expired cookie for the logout handler.
func ClearSessionCookie() *http.Cookie { return expiredSessionCookie() }
