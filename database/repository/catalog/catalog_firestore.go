package catalogRepo

import (
	"context"
	"fmt"
	"sort"

	"tourbook/database/repository"
	"tourbook/models"

	"cloud.google.com/go/firestore"
)

// FirestoreCatalogRepo implements CatalogRepository on Firestore.
type FirestoreCatalogRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreCatalogRepo(client *firestore.Client) CatalogRepository {
	return &FirestoreCatalogRepo{coll: client.Collection(repository.ServicesCollection)}
}

func (r *FirestoreCatalogRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if repository.IsFirestoreNotFound(err) {
			return nil, fmt.Errorf("service with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	var svc models.Service
	if err := snap.DataTo(&svc); err != nil {
		return nil, fmt.Errorf("failed to decode service %s: %w", id, err)
	}
	return &svc, nil
}

func (r *FirestoreCatalogRepo) ListByProvider(ctx context.Context, providerID string, includeInactive bool) ([]models.Service, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	q := r.coll.Where("providerId", "==", providerID)
	if !includeInactive {
		q = q.Where("isActive", "==", true)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list services for provider %s: %w", providerID, err)
	}

	services := make([]models.Service, 0, len(docs))
	for _, doc := range docs {
		var svc models.Service
		if err := doc.DataTo(&svc); err != nil {
			return nil, fmt.Errorf("failed to decode service %s: %w", doc.Ref.ID, err)
		}
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

func (r *FirestoreCatalogRepo) Create(ctx context.Context, service *models.Service) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	if _, err := r.coll.Doc(service.ID).Create(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *FirestoreCatalogRepo) Update(ctx context.Context, service *models.Service) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	ref := r.coll.Doc(service.ID)
	if _, err := ref.Get(ctx); err != nil {
		if repository.IsFirestoreNotFound(err) {
			return fmt.Errorf("service with id %s: %w", service.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("failed to update service with id %s: %w", service.ID, err)
	}
	if _, err := ref.Set(ctx, service); err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", service.ID, err)
	}
	return nil
}
