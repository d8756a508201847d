package settingsRepo

import (
	"context"
	"fmt"

	"tourbook/database/repository"
	"tourbook/models"

	"cloud.google.com/go/firestore"
)

// FirestoreSettingsRepo implements SettingsRepository on Firestore. Documents are keyed by provider id.
type FirestoreSettingsRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreSettingsRepo(client *firestore.Client) SettingsRepository {
	return &FirestoreSettingsRepo{coll: client.Collection(repository.ProviderSettingsCollection)}
}

func (r *FirestoreSettingsRepo) GetByProviderID(ctx context.Context, providerID string) (*models.ProviderSettings, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	snap, err := r.coll.Doc(providerID).Get(ctx)
	if err != nil {
		if repository.IsFirestoreNotFound(err) {
			return nil, fmt.Errorf("settings for provider %s: %w", providerID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch settings for provider %s: %w", providerID, err)
	}
	var s models.ProviderSettings
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings for provider %s: %w", providerID, err)
	}
	return &s, nil
}

func (r *FirestoreSettingsRepo) Upsert(ctx context.Context, settings *models.ProviderSettings) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	if _, err := r.coll.Doc(settings.ProviderID).Set(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings for provider %s: %w", settings.ProviderID, err)
	}
	return nil
}
