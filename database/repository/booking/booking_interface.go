package bookingRepo

import (
	"context"

	"tourbook/models"
)

// Filter narrows a booking listing. Empty fields match everything.
type Filter struct {
	ProviderID string
	Status     string
	Date       string
}

// BookingRepository defines methods for booking data access.
//
// Implementations keep the active slot key (models.Booking.SlotKey) unique:
// a write that would give two bookings the same key fails with repository.ErrSlotTaken.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List returns matching bookings, newest first.
	List(ctx context.Context, filter Filter) ([]models.Booking, error)
	// ListActiveOnDate returns the provider's non-cancelled bookings on a date.
	ListActiveOnDate(ctx context.Context, providerID, date string) ([]models.Booking, error)
	// Update stores booking if the stored version still equals expectedVersion.
	// The caller sets booking.Version to the new version.
	Update(ctx context.Context, booking *models.Booking, expectedVersion int) error
	// Delete removes the booking, releases its slot and returns the removed record.
	Delete(ctx context.Context, id string) (*models.Booking, error)
}
