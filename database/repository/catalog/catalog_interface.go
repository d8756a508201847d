package catalogRepo

import (
	"context"

	"tourbook/models"
)

// CatalogRepository stores the tour/service options offered by providers.
type CatalogRepository interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// ListByProvider returns a provider's services ordered by name.
	ListByProvider(ctx context.Context, providerID string, includeInactive bool) ([]models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
}
