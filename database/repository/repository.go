package repository

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection names shared by every store backend.
const (
	UsersCollection            = "users"
	ProvidersCollection        = "providers"
	ServicesCollection         = "services"
	BookingsCollection         = "bookings"
	ProviderSettingsCollection = "provider_settings"
	ReviewsCollection          = "reviews"
	BookingSlotsCollection     = "booking_slots"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects the write.
	ErrDuplicate = errors.New("document already exists")
	// ErrSlotTaken is returned when another active booking holds the slot key.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrVersionConflict is returned when the stored version moved since the read.
	ErrVersionConflict = errors.New("version conflict")
)

// NewContext derives a bounded context for a single store round-trip.
func NewContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, 5*time.Second)
}

// IsFirestoreNotFound reports whether err is a Firestore NotFound status.
func IsFirestoreNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// IsFirestoreAlreadyExists reports whether err is a Firestore AlreadyExists status.
func IsFirestoreAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
