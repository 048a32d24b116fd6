package transport

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/demoapps/rbac-portal/internal/core/domain"
)

// Registry holds the simulated backend's seeded users. It is fixed for the
// life of the process and never persisted; lookups return copies so callers
// cannot mutate the seed data.
type Registry struct {
	users []domain.User
}

// DefaultRegistry returns the stock demo registry: one admin and one regular
// user, ids 1 and 2 in that order. Dependent tests rely on this exact content
// and ordering.
func DefaultRegistry() *Registry {
	return &Registry{users: []domain.User{
		{ID: 1, Username: "admin", Password: "admin", FirstName: "Admin", LastName: "User", Email: "admin@admin.com", Role: domain.RoleAdmin},
		{ID: 2, Username: "user", Password: "user", FirstName: "Normal", LastName: "User", Email: "user@user.com", Role: domain.RoleUser},
	}}
}

type seedFile struct {
	Users []domain.User `yaml:"users"`
}

// LoadRegistry reads a YAML seed file and returns a registry built from it,
// preserving file order. Intended for demos that want a roster other than the
// stock one.
func LoadRegistry(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var sf seedFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(sf.Users) == 0 {
		return nil, fmt.Errorf("seed file %s contains no users", path)
	}

	seen := make(map[int]struct{}, len(sf.Users))
	for _, u := range sf.Users {
		if u.ID <= 0 || u.Username == "" {
			return nil, fmt.Errorf("seed file %s: every user needs a positive id and a username", path)
		}
		if _, dup := seen[u.ID]; dup {
			return nil, fmt.Errorf("seed file %s: duplicate user id %d", path, u.ID)
		}
		seen[u.ID] = struct{}{}
	}

	return &Registry{users: sf.Users}, nil
}

// All returns the seeded users in insertion order.
func (r *Registry) All() []domain.User {
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out
}

// FindByID looks up a seeded user by numeric id.
func (r *Registry) FindByID(id int) (domain.User, bool) {
	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return domain.User{}, false
}

// FindByCredentials looks up a seeded user by exact username and password
// match. This is a demo: no hashing, no timing hardening.
func (r *Registry) FindByCredentials(username, password string) (domain.User, bool) {
	for _, u := range r.users {
		if u.Username == username && u.Password == password {
			return u, true
		}
	}
	return domain.User{}, false
}
