package providerRepo

import (
	"context"
	"fmt"
	"sort"

	"tourbook/database/repository"
	"tourbook/models"

	"cloud.google.com/go/firestore"
)

// FirestoreProviderRepo implements ProviderRepository on Firestore.
type FirestoreProviderRepo struct {
	client       *firestore.Client
	coll         *firestore.CollectionRef
	settingsColl *firestore.CollectionRef
}

// NewFirestoreProviderRepo creates a ProviderRepository backed by Firestore.
func NewFirestoreProviderRepo(client *firestore.Client) ProviderRepository {
	return &FirestoreProviderRepo{
		client:       client,
		coll:         client.Collection(repository.ProvidersCollection),
		settingsColl: client.Collection(repository.ProviderSettingsCollection),
	}
}

func decodeProvider(snap *firestore.DocumentSnapshot) (*models.Provider, error) {
	var p models.Provider
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to decode provider %s: %w", snap.Ref.ID, err)
	}
	return &p, nil
}

func (r *FirestoreProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if repository.IsFirestoreNotFound(err) {
			return nil, fmt.Errorf("provider with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return decodeProvider(snap)
}

func (r *FirestoreProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	docs, err := r.coll.Where("userId", "==", userID).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider for user %s: %w", userID, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("provider for user %s: %w", userID, repository.ErrNotFound)
	}
	return decodeProvider(docs[0])
}

func (r *FirestoreProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	docs, err := r.coll.Where("isActive", "==", true).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	providers := make([]models.Provider, 0, len(docs))
	for _, doc := range docs {
		p, err := decodeProvider(doc)
		if err != nil {
			return nil, err
		}
		providers = append(providers, *p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i].BusinessName < providers[j].BusinessName })
	return providers, nil
}

// CreateWithSettings writes the profile and its settings in one transaction,
// rejecting a second profile for the same user.
func (r *FirestoreProviderRepo) CreateWithSettings(ctx context.Context, provider *models.Provider, settings *models.ProviderSettings) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(r.coll.Where("userId", "==", provider.UserID).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return repository.ErrDuplicate
		}
		if err := tx.Create(r.coll.Doc(provider.ID), provider); err != nil {
			return err
		}
		return tx.Set(r.settingsColl.Doc(settings.ProviderID), settings)
	})
	if err != nil {
		if repository.IsFirestoreAlreadyExists(err) {
			err = repository.ErrDuplicate
		}
		return fmt.Errorf("provider setup transaction failed: %w", err)
	}
	return nil
}

func (r *FirestoreProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	ref := r.coll.Doc(provider.ID)
	if _, err := ref.Get(ctx); err != nil {
		if repository.IsFirestoreNotFound(err) {
			return fmt.Errorf("provider with id %s: %w", provider.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	if _, err := ref.Set(ctx, provider); err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	return nil
}
