package userRepo

import (
	"context"
	"fmt"

	"tourbook/database/repository"
	"tourbook/models"

	"cloud.google.com/go/firestore"
)

// FirestoreUserRepo implements UserRepository on Firestore. Documents are keyed by user id.
type FirestoreUserRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreUserRepo creates a UserRepository backed by the given Firestore client.
func NewFirestoreUserRepo(client *firestore.Client) UserRepository {
	return &FirestoreUserRepo{client: client, coll: client.Collection(repository.UsersCollection)}
}

// GetByID retrieves a user by its unique ID.
func (r *FirestoreUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if repository.IsFirestoreNotFound(err) {
			return nil, fmt.Errorf("user with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	var user models.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by its email address.
func (r *FirestoreUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	docs, err := r.coll.Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with email %s: %w", email, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("user with email %s: %w", email, repository.ErrNotFound)
	}
	var user models.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// Create inserts a new user document. Email uniqueness is checked inside a transaction.
func (r *FirestoreUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(r.coll.Where("email", "==", user.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			return repository.ErrDuplicate
		}
		return tx.Create(r.coll.Doc(user.ID), user)
	})
	if err != nil {
		if repository.IsFirestoreAlreadyExists(err) {
			err = repository.ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update replaces an existing user document.
func (r *FirestoreUserRepo) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	ref := r.coll.Doc(user.ID)
	if _, err := ref.Get(ctx); err != nil {
		if repository.IsFirestoreNotFound(err) {
			return fmt.Errorf("user with id %s: %w", user.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if _, err := ref.Set(ctx, user); err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	return nil
}
