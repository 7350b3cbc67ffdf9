// Package users declares the server-side repository contract for stored
// accounts. It is the single source of truth for identity.
package users

import (
	"context"

	"github.com/dcastano/authd/internal/server/models"
)

// Repository defines persistence operations for user accounts.
type Repository interface {
	// Create inserts a new account. A duplicate email yields
	// common.ErrorDuplicateEmail.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail looks up an account by exact email match, as stored.
	// Implementations return common.ErrorNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID looks up an account by its opaque id.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdatePasswordHash replaces the stored hash for the given account.
	// Returns common.ErrorNotFound when the account does not exist.
	UpdatePasswordHash(ctx context.Context, id string, newHash string) error
}
