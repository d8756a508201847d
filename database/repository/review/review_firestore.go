package reviewRepo

import (
	"context"
	"fmt"

	"tourbook/database/repository"
	"tourbook/models"

	"cloud.google.com/go/firestore"
)

// FirestoreReviewRepo implements ReviewRepository on Firestore.
type FirestoreReviewRepo struct {
	coll *firestore.CollectionRef
}

func NewFirestoreReviewRepo(client *firestore.Client) ReviewRepository {
	return &FirestoreReviewRepo{coll: client.Collection(repository.ReviewsCollection)}
}

func (r *FirestoreReviewRepo) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	if _, err := r.coll.Doc(review.ID).Create(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *FirestoreReviewRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	docs, err := r.coll.Where("providerId", "==", providerID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for provider %s: %w", providerID, err)
	}

	reviews := make([]models.Review, 0, len(docs))
	for _, doc := range docs {
		var rv models.Review
		if err := doc.DataTo(&rv); err != nil {
			return nil, fmt.Errorf("failed to decode review %s: %w", doc.Ref.ID, err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}
