package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// displayName falls back to the local part of the email address.
func displayName(id Identity) string {
	if name := strings.TrimSpace(id.DisplayName); name != "" {
		return name
	}
	if at := strings.Index(id.Email, "@"); at > 0 {
		return id.Email[:at]
	}
	return id.Email
}

func (s *DefaultUserService) EnsureUser(ctx context.Context, id Identity, role string) (*models.User, error) {
	existing, err := s.Repo.GetByID(ctx, id.UID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewBackendError("Failed to load user", err)
	}

	if role == "" {
		role = models.RoleClient
	}
	if !models.ValidRole(role) {
		return nil, utils.ValidationError{Message: "Role must be provider or client"}
	}

	u := &models.User{
		ID:        id.UID,
		Email:     strings.ToLower(strings.TrimSpace(id.Email)),
		Name:      displayName(id),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent first request of the same user.
			if again, getErr := s.Repo.GetByID(ctx, id.UID); getErr == nil {
				return again, nil
			}
			return nil, utils.ConflictError{Message: "A user with this email already exists"}
		}
		return nil, utils.NewBackendError("Failed to create user", err)
	}
	utils.GetLogger().Info("User document created", zap.String("userId", u.ID), zap.String("role", u.Role))
	return u, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: "User not found"}
		}
		return nil, utils.NewBackendError("Failed to load user", err)
	}
	return u, nil
}

func (s *DefaultUserService) UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.ValidationError{Message: "Name must not be empty"}
		}
		u.Name = name
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.FCMToken != nil {
		u.FCMToken = strings.TrimSpace(*req.FCMToken)
	}
	now := time.Now().UTC()
	u.UpdatedAt = &now

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, utils.NewBackendError("Failed to update user", err)
	}
	return u, nil
}
