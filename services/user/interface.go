package user

import (
	"context"

	userRepo "tourbook/database/repository/user"
	"tourbook/models"
)

// Identity is the verified caller as reported by the identity backend.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// UserService manages the User documents that back authenticated identities.
type UserService interface {
	// EnsureUser returns the User for an identity, creating it on first sight.
	// role is only used on creation; empty means client.
	EnsureUser(ctx context.Context, id Identity, role string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func NewDefaultUserService(repo userRepo.UserRepository) *DefaultUserService {
	return &DefaultUserService{Repo: repo}
}
