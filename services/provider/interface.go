package provider

import (
	"context"
	"time"

	catalogRepo "tourbook/database/repository/catalog"
	providerRepo "tourbook/database/repository/provider"
	reviewRepo "tourbook/database/repository/review"
	settingsRepo "tourbook/database/repository/settings"
	"tourbook/models"
	"tourbook/services/booking"
)

// ProviderService covers provider profiles and everything a provider configures.
type ProviderService interface {
	// Profile
	Setup(ctx context.Context, owner *models.User, req models.ProviderSetupRequest) (*models.Provider, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	GetProviderForUser(ctx context.Context, userID string) (*models.Provider, error)
	ListActive(ctx context.Context) ([]models.Provider, error)
	UpdateProvider(ctx context.Context, id string, req models.ProviderUpdateRequest) (*models.Provider, error)
	IsOwner(ctx context.Context, providerID, userID string) (bool, error)

	// Catalog
	ListServices(ctx context.Context, providerID string, includeInactive bool) ([]models.Service, error)
	CreateService(ctx context.Context, providerID string, req models.ServiceRequest) (*models.Service, error)
	UpdateService(ctx context.Context, providerID, serviceID string, req models.ServiceRequest) (*models.Service, error)
	DeactivateService(ctx context.Context, providerID, serviceID string) (*models.Service, error)

	// Settings
	GetSettings(ctx context.Context, providerID string) (*models.ProviderSettings, error)
	ReplaceSettings(ctx context.Context, providerID string, req models.SettingsRequest) (*models.ProviderSettings, error)

	// Reviews
	ListReviews(ctx context.Context, providerID string) (*models.ReviewSummary, error)
	CreateReview(ctx context.Context, providerID string, author *models.User, req models.ReviewRequest) (*models.Review, error)

	// Dashboard
	Dashboard(ctx context.Context, providerID string) (*models.DashboardStats, error)
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	Settings settingsRepo.SettingsRepository
	Catalog  catalogRepo.CatalogRepository
	Reviews  reviewRepo.ReviewRepository
	Bookings booking.BookingService
	Location *time.Location
	Now      func() time.Time
}

func (s *DefaultProviderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
