package booking

import (
	"context"

	bookingRepo "tourbook/database/repository/booking"
	"tourbook/models"
)

// Booking events published to the Notifier.
const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
	EventRescheduled   = "booking.rescheduled"
	EventCancelled     = "booking.cancelled"
	EventDeleted       = "booking.deleted"
)

// BookingService is the single entry point for creating and changing bookings.
type BookingService interface {
	Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter bookingRepo.Filter) ([]models.Booking, error)
	// ListByProvider never fails: backend errors degrade to an empty list.
	ListByProvider(ctx context.Context, providerID string) []models.Booking
	Update(ctx context.Context, id string, patch models.BookingPatch) (*models.Booking, error)
	Delete(ctx context.Context, id string) (*models.Booking, error)
	Cancel(ctx context.Context, id string, actor *models.User) (*models.Booking, error)
}

// Notifier receives booking lifecycle events. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, event string, booking models.Booking) error
}

// OwnerLookup resolves the user that owns a provider profile.
type OwnerLookup interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
}
