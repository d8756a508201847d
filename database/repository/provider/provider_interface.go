package providerRepo

import (
	"context"

	"tourbook/models"
)

// ProviderRepository defines methods for provider profile data access.
type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByUserID returns the profile owned by a user, or repository.ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.Provider, error)
	// ListActive returns active providers ordered by business name.
	ListActive(ctx context.Context) ([]models.Provider, error)
	// CreateWithSettings stores a new profile and its settings atomically.
	// Returns repository.ErrDuplicate if the owning user already has a profile.
	CreateWithSettings(ctx context.Context, provider *models.Provider, settings *models.ProviderSettings) error
	Update(ctx context.Context, provider *models.Provider) error
}
