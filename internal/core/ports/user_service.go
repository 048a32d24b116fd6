package ports

import (
	"context"

	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// UserService exposes the user directory through the API client chain.
type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int) (*domain.User, error)
}
