package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/demoapps/rbac-portal/internal/api/metrics"
	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// Route targets for role-mismatch redirects: a denied user is sent to their
// own home, not to a generic error page.
const (
	adminHome = "/admin/users"
	userHome  = "/profile"
)

// RequireRole admits requests whose session matches the required role and
// redirects mismatched sessions to their own home page.
//
// An unauthenticated request is admitted: identity checks belong to
// RequireSession, which is expected to run upstream. Used on its own this
// gate therefore fails open, which is a known weakness of the demo, kept
// deliberately.
func RequireRole(sessions SessionReader, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if required == "" {
				metrics.GateDecisionsTotal.WithLabelValues("role", "admit").Inc()
				return next(c)
			}

			current := sessions.Current()
			if current == nil {
				metrics.GateDecisionsTotal.WithLabelValues("role", "admit").Inc()
				return next(c)
			}

			if current.Role == required {
				metrics.GateDecisionsTotal.WithLabelValues("role", "admit").Inc()
				return next(c)
			}

			metrics.GateDecisionsTotal.WithLabelValues("role", "deny").Inc()
			if current.Role == domain.RoleAdmin {
				return c.Redirect(http.StatusFound, adminHome)
			}
			return c.Redirect(http.StatusFound, userHome)
		}
	}
}
