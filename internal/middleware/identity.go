package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides the user identifier used in rate-limit keys; it
// reads the account ID that SessionAuth stored in the Echo context. The
// credential endpoints run before any session exists, so "anon" is the
// common case there.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated account ID as a string, or
// "anon" when the request carries no session.
func currentUserID(c echo.Context) string {
    if v := c.Get("user_id"); v != nil {
        switch id := v.(type) {
        case uint64:
            return strconv.FormatUint(id, 10)
        case string:
            if id != "" {
                return id
            }
        }
    }
    return "anon"
}
