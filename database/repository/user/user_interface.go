package userRepo

import (
	"context"

	"tourbook/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record. Returns repository.ErrDuplicate if the id or email exists.
	Create(ctx context.Context, user *models.User) error
	// Update replaces an existing user record.
	Update(ctx context.Context, user *models.User) error
}
