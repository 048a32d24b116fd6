package ports

import (
	"context"

	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// AuthService is the single source of truth for the current session.
type AuthService interface {
	// Login authenticates against the backend and, on success, persists and
	// publishes the resulting identity. Failures surface as
	// domain.ErrInvalidCredentials regardless of the backend's exact reason.
	Login(ctx context.Context, username, password string) (*domain.User, error)

	// Logout clears the durable slot and the in-memory session
	// unconditionally. Calling it with no active session is a no-op.
	Logout(ctx context.Context)

	// Current returns the in-memory session value synchronously; nil when no
	// one is logged in.
	Current() *domain.User

	// Subscribe returns a latest-value stream of session changes, seeded with
	// the current value, plus an unsubscribe func.
	Subscribe() (<-chan *domain.User, func())

	IsAuthenticated() bool
	HasRole(role domain.Role) bool
}
