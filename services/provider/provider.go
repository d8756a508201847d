package provider

import (
	"context"
	"errors"
	"strings"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Setup creates the caller's provider profile together with default settings.
func (s *DefaultProviderService) Setup(ctx context.Context, owner *models.User, req models.ProviderSetupRequest) (*models.Provider, error) {
	if owner == nil || owner.Role != models.RoleProvider {
		return nil, utils.ForbiddenError{Message: MsgProviderRole}
	}
	name := strings.TrimSpace(req.BusinessName)
	if name == "" {
		return nil, utils.ValidationError{Message: MsgBusinessName}
	}

	if _, err := s.Repo.GetByUserID(ctx, owner.ID); err == nil {
		return nil, utils.ConflictError{Message: MsgProviderExists}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewBackendError(MsgProviderSaveFailed, err)
	}

	now := s.now().UTC()
	p := &models.Provider{
		ID:           uuid.New().String(),
		UserID:       owner.ID,
		BusinessName: name,
		Description:  strings.TrimSpace(req.Description),
		Location:     strings.TrimSpace(req.Location),
		Phone:        strings.TrimSpace(req.Phone),
		Website:      strings.TrimSpace(req.Website),
		IsActive:     true,
		CreatedAt:    now,
	}
	settings := models.DefaultProviderSettings(p.ID)
	settings.ID = p.ID
	settings.CreatedAt = now

	if err := s.Repo.CreateWithSettings(ctx, p, &settings); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ConflictError{Message: MsgProviderExists}
		}
		return nil, utils.NewBackendError(MsgProviderSaveFailed, err)
	}
	utils.GetLogger().Info("Provider profile created", zap.String("providerId", p.ID), zap.String("userId", owner.ID))
	return p, nil
}

func (s *DefaultProviderService) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: MsgProviderNotFound}
		}
		return nil, utils.NewBackendError(MsgProviderLoadFailed, err)
	}
	return p, nil
}

func (s *DefaultProviderService) GetProviderForUser(ctx context.Context, userID string) (*models.Provider, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: MsgProviderNotFound}
		}
		return nil, utils.NewBackendError(MsgProviderLoadFailed, err)
	}
	return p, nil
}

func (s *DefaultProviderService) ListActive(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, utils.NewBackendError(MsgProviderLoadFailed, err)
	}
	return providers, nil
}

func (s *DefaultProviderService) UpdateProvider(ctx context.Context, id string, req models.ProviderUpdateRequest) (*models.Provider, error) {
	p, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.BusinessName != nil {
		name := strings.TrimSpace(*req.BusinessName)
		if name == "" {
			return nil, utils.ValidationError{Message: MsgBusinessName}
		}
		p.BusinessName = name
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		p.Location = strings.TrimSpace(*req.Location)
	}
	if req.Phone != nil {
		p.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Website != nil {
		p.Website = strings.TrimSpace(*req.Website)
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	now := s.now().UTC()
	p.UpdatedAt = &now

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, utils.NewBackendError(MsgProviderSaveFailed, err)
	}
	return p, nil
}

// IsOwner reports whether userID owns the provider. An unknown provider is a NotFoundError.
func (s *DefaultProviderService) IsOwner(ctx context.Context, providerID, userID string) (bool, error) {
	p, err := s.GetProvider(ctx, providerID)
	if err != nil {
		return false, err
	}
	return p.UserID == userID, nil
}
