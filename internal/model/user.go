package model

import (
	"errors"
	"time"
)

// User represents a registered user in the system
type User struct {
	ID             int64      `db:"id" json:"-"`
	Username       string     `db:"username" json:"username"`
	Email          string     `db:"email" json:"email"`
	PasswordHashed string     `db:"password_hashed" json:"-"` // "-" hides from JSON output
	Bio            string     `db:"bio" json:"bio"`
	Image          string     `db:"image" json:"image"`
	RegisteredAt   time.Time  `db:"registered_at" json:"-"`
	LastLogin      *time.Time `db:"last_login" json:"-"`
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries the fields of PUT /user. Nil means "leave unchanged".
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

// UserResponse is the body of every endpoint returning the current user.
type UserResponse struct {
	User UserBody `json:"user"`
}

// UserBody is the authenticated user's own view, including the token.
type UserBody struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// Column limits mirrored by the migrations.
const (
	MaxUsernameLength = 80
	MaxEmailLength    = 100
	MaxBioLength      = 300
	MaxImageLength    = 512
	MinPasswordLength = 8
)

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to use a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when attempting to use a taken email
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")
)
