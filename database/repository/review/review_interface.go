package reviewRepo

import (
	"context"

	"tourbook/models"
)

// ReviewRepository stores client reviews of providers.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	// ListByProvider returns a provider's reviews, newest first.
	ListByProvider(ctx context.Context, providerID string) ([]models.Review, error)
}
