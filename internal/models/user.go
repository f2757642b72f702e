package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

var _ Model = (*User)(nil)

// User is an account created through POST /users.
type User struct {
	base
	name         string
	email        string
	passwordHash string
}

// NewUser creates a User. The password must already be hashed.
func NewUser(sequence int, name, email, passwordHash string) *User {
	return &User{
		base:         newBase(sequence),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
	}
}

func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }

// Validate checks that the user has an id, a name, and a parseable email address.
func (u *User) Validate() error {
	if u.id == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := mail.ParseAddress(u.email); err != nil {
		return fmt.Errorf("invalid email %q", u.email)
	}
	if u.passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

// UserResponse is the public JSON form of a [User]; the password hash is never serialized.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Response converts u to its public JSON form.
func (u *User) Response() UserResponse {
	return UserResponse{ID: u.id, Name: u.name, Email: u.email, CreatedAt: u.createdAt}
}
