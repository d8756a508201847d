package settingsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tourbook/database"
	"tourbook/database/repository"
	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo() SettingsRepository {
	repo := &MongoSettingsRepo{coll: database.MongoDatabase().Collection(repository.ProviderSettingsCollection)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "providerId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create settings indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSettingsRepo) GetByProviderID(ctx context.Context, providerID string) (*models.ProviderSettings, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	var s models.ProviderSettings
	if err := r.coll.FindOne(ctx, bson.M{"providerId": providerID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("settings for provider %s: %w", providerID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch settings for provider %s: %w", providerID, err)
	}
	return &s, nil
}

func (r *MongoSettingsRepo) Upsert(ctx context.Context, settings *models.ProviderSettings) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"providerId": settings.ProviderID}, settings, opts); err != nil {
		return fmt.Errorf("failed to save settings for provider %s: %w", settings.ProviderID, err)
	}
	return nil
}
