package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/pharmaops/pharmacy-signoff/internal/handler"    // import the handlers that implement business logic
	"github.com/pharmaops/pharmacy-signoff/internal/middleware" // import middleware for session auth, rate limiting and caching
)

// RegisterRoutes registers routes that require neither authentication nor
// rate limiting.  The health check is used by monitoring to verify that
// the service is up; when staticDir is non-empty the in-house front end
// is served from it.
func RegisterRoutes(e *echo.Echo, staticDir string) {
	e.GET("/healthz", handler.Health)
	if staticDir != "" {
		e.Static("/", staticDir)
	}
}

// RegisterAuth registers the account endpoints.  The credential routes
// (signup and login) run behind the Redis token bucket so passwords
// cannot be brute-forced; logout only clears a cookie and is left
// unlimited.  None of these require an existing session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.POST("/createaccount", a.CreateAccount, limiter)
	e.POST("/login", a.Login, limiter)
	e.GET("/logout", a.Logout)
}

// RegisterAPI registers the sign-off and history endpoints under /api.
// Every route in the group runs the session middleware: requests without
// a valid session cookie are redirected to /login before any handler
// executes.  The history listing additionally sits behind the Redis
// response cache; submissions are POSTs and pass the cache untouched.
func RegisterAPI(e *echo.Echo, s *handler.SignoffHandler, hist *handler.HistoryHandler,
	sessionSecret string, cache echo.MiddlewareFunc) {
	api := e.Group("/api")
	api.Use(middleware.SessionAuth(sessionSecret))

	api.POST("/signoff/daily", s.Daily)
	api.POST("/signoff/weekly", s.Weekly)
	api.POST("/signoff/monthly", s.Monthly)
	api.GET("/history", hist.List, cache)
}
