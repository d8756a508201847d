package providerRepo

import (
	"context"
	"errors"
	"fmt"

	"tourbook/database"
	"tourbook/database/repository"
	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll         *mongo.Collection
	settingsColl *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoDatabase()
	repo := &MongoProviderRepo{
		coll:         db.Collection(repository.ProvidersCollection),
		settingsColl: db.Collection(repository.ProviderSettingsCollection),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create provider indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProviderRepo) findOne(ctx context.Context, filter bson.M) (*models.Provider, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	var p models.Provider
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, err := r.findOne(ctx, bson.M{"id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider with id %s: %w", id, err)
	}
	return p, nil
}

func (r *MongoProviderRepo) GetByUserID(ctx context.Context, userID string) (*models.Provider, error) {
	p, err := r.findOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider for user %s: %w", userID, err)
	}
	return p, nil
}

func (r *MongoProviderRepo) ListActive(ctx context.Context) ([]models.Provider, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "businessName", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

// CreateWithSettings inserts the profile and its settings in one transaction.
func (r *MongoProviderRepo) CreateWithSettings(ctx context.Context, provider *models.Provider, settings *models.ProviderSettings) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, provider); err != nil {
			return fmt.Errorf("insert provider failed: %w", err)
		}
		if _, err := r.settingsColl.InsertOne(sc, settings); err != nil {
			return fmt.Errorf("insert provider settings failed: %w", err)
		}
		return nil
	}

	err = mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("provider setup transaction failed: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("provider setup transaction failed: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) Update(ctx context.Context, provider *models.Provider) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": provider.ID}, provider)
	if err != nil {
		return fmt.Errorf("failed to update provider with id %s: %w", provider.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("provider with id %s: %w", provider.ID, repository.ErrNotFound)
	}
	return nil
}
