package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/demoapps/rbac-portal/internal/api/metrics"
	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// SessionReader is the slice of the session store the gates need.
type SessionReader interface {
	Current() *domain.User
}

// RequireSession admits requests that carry a session and redirects everyone
// else to the login page, with the originally requested path attached as
// returnUrl so the login flow can resume there.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.Current() != nil {
				metrics.GateDecisionsTotal.WithLabelValues("session", "admit").Inc()
				return next(c)
			}

			metrics.GateDecisionsTotal.WithLabelValues("session", "deny").Inc()
			q := url.Values{}
			q.Set("returnUrl", c.Request().URL.Path)
			return c.Redirect(http.StatusFound, "/login?"+q.Encode())
		}
	}
}
