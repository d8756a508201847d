package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB. Slot uniqueness
// rests on a partial unique index over slotKey, which cancelled bookings omit.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.MongoDatabase().Collection(repository.BookingsCollection)}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to create booking: %w", repository.ErrSlotTaken)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepo) List(ctx context.Context, filter Filter) ([]models.Booking, error) {
	query := bson.M{}
	if filter.ProviderID != "" {
		query["providerId"] = filter.ProviderID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Date != "" {
		query["date"] = filter.Date
	}
	bookings, err := r.find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) ListActiveOnDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	bookings, err := r.find(ctx, bson.M{
		"providerId": providerID,
		"date":       date,
		"status":     bson.M{"$ne": models.StatusCancelled},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for provider %s on %s: %w", providerID, date, err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking, expectedVersion int) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": booking.ID, "version": expectedVersion}, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to update booking %s: %w", booking.ID, repository.ErrSlotTaken)
		}
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"id": booking.ID})
		if err != nil {
			return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("booking with id %s: %w", booking.ID, repository.ErrNotFound)
		}
		return fmt.Errorf("booking with id %s: %w", booking.ID, repository.ErrVersionConflict)
	}
	return nil
}

func (r *MongoBookingRepo) Delete(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	var removed models.Booking
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&removed); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	return &removed, nil
}
