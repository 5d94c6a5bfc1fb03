package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrSelfRoleChange = errors.New("cannot change own role")
var ErrResetNotFound = errors.New("reset challenge not found or expired")

// KnownRole reports whether role is one the system assigns. Roles are open
// string tags: unknown roles are rejected on write, but a token carrying one
// still decodes and is simply denied by role-gated routes.
func KnownRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models a managed account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Age          int       `json:"age,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
