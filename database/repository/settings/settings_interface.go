package settingsRepo

import (
	"context"

	"tourbook/models"
)

// SettingsRepository stores one ProviderSettings document per provider.
type SettingsRepository interface {
	// GetByProviderID returns the provider's settings or repository.ErrNotFound.
	GetByProviderID(ctx context.Context, providerID string) (*models.ProviderSettings, error)
	// Upsert replaces the provider's settings, creating them if absent.
	Upsert(ctx context.Context, settings *models.ProviderSettings) error
}
