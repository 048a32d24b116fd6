package domain

import "errors"

// Role is the access level assigned to a user.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUnauthorized = errors.New("unauthorized")
var ErrUserNotFound = errors.New("user not found")

// User models an authenticated principal: profile data, role, and the bearer
// token issued at login. The Password field is only ever populated inside the
// seed registry; it must be blanked before a User crosses any response
// boundary.
type User struct {
	ID        int    `json:"id" yaml:"id"`
	Username  string `json:"username" yaml:"username"`
	Password  string `json:"password,omitempty" yaml:"password"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
	Role      Role   `json:"role" yaml:"role"`
	Token     string `json:"token,omitempty" yaml:"-"`
}

// WithoutPassword returns a copy of the user safe to serialize to a caller.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}
