package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// UserService reads the user directory through the API client chain, so every
// request picks up the session's bearer token and the simulated backend's
// authorization rules apply.
type UserService struct {
	client  *http.Client
	baseURL string
}

func NewUserService(client *http.Client, baseURL string) *UserService {
	return &UserService{client: client, baseURL: baseURL}
}

// GetAll returns every user the backend will show us, passwords blanked.
func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	resp, err := s.get(ctx, s.baseURL+"/api/users")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var users []domain.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for i := range users {
		users[i] = users[i].WithoutPassword()
	}
	return users, nil
}

// GetByID returns a single user, password blanked.
func (s *UserService) GetByID(ctx context.Context, id int) (*domain.User, error) {
	resp, err := s.get(ctx, fmt.Sprintf("%s/api/users/%d", s.baseURL, id))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	user = user.WithoutPassword()
	return &user, nil
}

func (s *UserService) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("users request: %w", err)
	}
	return resp, nil
}

func mapStatus(code int) error {
	switch code {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrUserNotFound
	default:
		return fmt.Errorf("users: unexpected status %d", code)
	}
}
