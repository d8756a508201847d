package provider

import (
	"context"
	"errors"
	"strings"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
)

func (s *DefaultProviderService) ListServices(ctx context.Context, providerID string, includeInactive bool) ([]models.Service, error) {
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	services, err := s.Catalog.ListByProvider(ctx, providerID, includeInactive)
	if err != nil {
		return nil, utils.NewBackendError(MsgCatalogFailed, err)
	}
	if services == nil {
		services = []models.Service{}
	}
	return services, nil
}

func (s *DefaultProviderService) CreateService(ctx context.Context, providerID string, req models.ServiceRequest) (*models.Service, error) {
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	if req.Name == nil || req.Duration == nil {
		return nil, utils.ValidationError{Message: MsgServiceInvalid}
	}
	svc := &models.Service{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		IsActive:   true,
		CreatedAt:  s.now().UTC(),
	}
	if err := applyServiceRequest(svc, req); err != nil {
		return nil, err
	}
	if err := s.Catalog.Create(ctx, svc); err != nil {
		return nil, utils.NewBackendError(MsgCatalogFailed, err)
	}
	return svc, nil
}

func (s *DefaultProviderService) UpdateService(ctx context.Context, providerID, serviceID string, req models.ServiceRequest) (*models.Service, error) {
	svc, err := s.serviceOf(ctx, providerID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := applyServiceRequest(svc, req); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	svc.UpdatedAt = &now
	if err := s.Catalog.Update(ctx, svc); err != nil {
		return nil, utils.NewBackendError(MsgCatalogFailed, err)
	}
	return svc, nil
}

// DeactivateService hides a service from the public catalog. Existing bookings
// keep their copied service name and price.
func (s *DefaultProviderService) DeactivateService(ctx context.Context, providerID, serviceID string) (*models.Service, error) {
	inactive := false
	return s.UpdateService(ctx, providerID, serviceID, models.ServiceRequest{IsActive: &inactive})
}

func (s *DefaultProviderService) serviceOf(ctx context.Context, providerID, serviceID string) (*models.Service, error) {
	svc, err := s.Catalog.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: MsgServiceNotFound}
		}
		return nil, utils.NewBackendError(MsgCatalogFailed, err)
	}
	if svc.ProviderID != providerID {
		return nil, utils.NotFoundError{Message: MsgServiceNotFound}
	}
	return svc, nil
}

func applyServiceRequest(svc *models.Service, req models.ServiceRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return utils.ValidationError{Message: MsgServiceInvalid}
		}
		svc.Name = name
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return utils.ValidationError{Message: MsgServiceInvalid}
		}
		svc.Duration = *req.Duration
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return utils.ValidationError{Message: MsgServiceInvalid}
		}
		svc.Price = *req.Price
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		svc.Category = strings.TrimSpace(*req.Category)
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	return nil
}
