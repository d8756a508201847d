package bookingRepo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"

	"tourbook/database/repository"
	"tourbook/models"

	"cloud.google.com/go/firestore"
)

// slotClaim is the document that reserves an active slot key in booking_slots.
type slotClaim struct {
	BookingID  string `firestore:"bookingId"`
	ProviderID string `firestore:"providerId"`
	Date       string `firestore:"date"`
	StartTime  string `firestore:"startTime"`
}

// FirestoreBookingRepo implements BookingRepository on Firestore. Every write
// runs in a transaction that also maintains the slot claim documents.
type FirestoreBookingRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
	slots  *firestore.CollectionRef
}

// NewFirestoreBookingRepo creates a BookingRepository backed by Firestore.
func NewFirestoreBookingRepo(client *firestore.Client) BookingRepository {
	return &FirestoreBookingRepo{
		client: client,
		coll:   client.Collection(repository.BookingsCollection),
		slots:  client.Collection(repository.BookingSlotsCollection),
	}
}

func (r *FirestoreBookingRepo) slotRef(key string) *firestore.DocumentRef {
	return r.slots.Doc(base64.RawURLEncoding.EncodeToString([]byte(key)))
}

func claimFor(b *models.Booking) slotClaim {
	return slotClaim{BookingID: b.ID, ProviderID: b.ProviderID, Date: b.Date, StartTime: b.StartTime}
}

// claimHolder returns the booking id holding the slot, or "" if it is free.
func (r *FirestoreBookingRepo) claimHolder(tx *firestore.Transaction, key string) (string, error) {
	snap, err := tx.Get(r.slotRef(key))
	if err != nil {
		if repository.IsFirestoreNotFound(err) {
			return "", nil
		}
		return "", err
	}
	var claim slotClaim
	if err := snap.DataTo(&claim); err != nil {
		return "", err
	}
	return claim.BookingID, nil
}

func decodeBooking(snap *firestore.DocumentSnapshot) (*models.Booking, error) {
	var b models.Booking
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", snap.Ref.ID, err)
	}
	return &b, nil
}

func (r *FirestoreBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if booking.SlotKey != "" {
			holder, err := r.claimHolder(tx, booking.SlotKey)
			if err != nil {
				return err
			}
			if holder != "" {
				return repository.ErrSlotTaken
			}
			if err := tx.Create(r.slotRef(booking.SlotKey), claimFor(booking)); err != nil {
				return err
			}
		}
		return tx.Create(r.coll.Doc(booking.ID), booking)
	})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *FirestoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	snap, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if repository.IsFirestoreNotFound(err) {
			return nil, fmt.Errorf("booking with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return decodeBooking(snap)
}

func (r *FirestoreBookingRepo) query(ctx context.Context, q firestore.Query) ([]models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(docs))
	for _, doc := range docs {
		b, err := decodeBooking(doc)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	// Sorted here because an orderBy next to the equality filters would need a
	// composite index.
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *FirestoreBookingRepo) List(ctx context.Context, filter Filter) ([]models.Booking, error) {
	q := r.coll.Query
	if filter.ProviderID != "" {
		q = q.Where("providerId", "==", filter.ProviderID)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("date", "==", filter.Date)
	}
	bookings, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *FirestoreBookingRepo) ListActiveOnDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	// Equality filters only: adding status != cancelled would need a
	// composite index on (providerId, date, status).
	q := r.coll.Where("providerId", "==", providerID).
		Where("date", "==", date)
	bookings, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for provider %s on %s: %w", providerID, date, err)
	}
	return activeOnly(bookings), nil
}

// activeOnly drops cancelled bookings in place.
func activeOnly(bookings []models.Booking) []models.Booking {
	active := bookings[:0]
	for _, b := range bookings {
		if b.Active() {
			active = append(active, b)
		}
	}
	return active
}

func (r *FirestoreBookingRepo) Update(ctx context.Context, booking *models.Booking, expectedVersion int) error {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	ref := r.coll.Doc(booking.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if repository.IsFirestoreNotFound(err) {
				return repository.ErrNotFound
			}
			return err
		}
		current, err := decodeBooking(snap)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return repository.ErrVersionConflict
		}

		oldKey, newKey := current.SlotKey, booking.SlotKey
		if newKey != "" && newKey != oldKey {
			holder, err := r.claimHolder(tx, newKey)
			if err != nil {
				return err
			}
			if holder != "" && holder != booking.ID {
				return repository.ErrSlotTaken
			}
		}

		// All reads are done; Firestore requires writes to follow them.
		if oldKey != "" && oldKey != newKey {
			if err := tx.Delete(r.slotRef(oldKey)); err != nil {
				return err
			}
		}
		if newKey != "" && newKey != oldKey {
			if err := tx.Set(r.slotRef(newKey), claimFor(booking)); err != nil {
				return err
			}
		}
		return tx.Set(ref, booking)
	})
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", booking.ID, err)
	}
	return nil
}

func (r *FirestoreBookingRepo) Delete(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := repository.NewContext(ctx)
	defer cancel()

	var removed *models.Booking
	ref := r.coll.Doc(id)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if repository.IsFirestoreNotFound(err) {
				return repository.ErrNotFound
			}
			return err
		}
		removed, err = decodeBooking(snap)
		if err != nil {
			return err
		}
		if removed.SlotKey != "" {
			if err := tx.Delete(r.slotRef(removed.SlotKey)); err != nil {
				return err
			}
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking with id %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	return removed, nil
}
