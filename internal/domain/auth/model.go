// Package auth provides user authentication for the API surface.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"confeito/internal/core/apperror"
	"confeito/internal/core/entity"
)

// User is a local account. The back office is single-user by default,
// but nothing prevents seeding more.
type User struct {
	entity.BaseCatalog

	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
}

// NewUser creates a user with a bcrypt password hash.
func NewUser(username, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	return &User{
		BaseCatalog:  entity.NewBaseCatalog(),
		Username:     username,
		PasswordHash: string(hash),
	}, nil
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").
			WithDetail("field", "username")
	}
	if u.PasswordHash == "" {
		return apperror.NewValidation("password hash is required").
			WithDetail("field", "passwordHash")
	}
	return nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
}
