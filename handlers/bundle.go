package handlers

import (
	"tourbook/services/availability"
	"tourbook/services/booking"
	"tourbook/services/identity"
	"tourbook/services/provider"
	"tourbook/services/user"
)

// HandlerBundle groups the endpoint handlers and the services the route
// middleware needs.
type HandlerBundle struct {
	Identity  identity.Provider
	Users     user.UserService
	Providers provider.ProviderService

	Auth         *AuthHandler
	Booking      *BookingHandler
	Provider     *ProviderHandler
	Availability *AvailabilityHandler
}

// NewHandlerBundle wires every handler over the given services.
func NewHandlerBundle(
	idp identity.Provider,
	users user.UserService,
	providers provider.ProviderService,
	bookings booking.BookingService,
	calendars AvailabilityService,
) *HandlerBundle {
	return &HandlerBundle{
		Identity:     idp,
		Users:        users,
		Providers:    providers,
		Auth:         &AuthHandler{Identity: idp, Users: users},
		Booking:      &BookingHandler{Service: bookings},
		Provider:     &ProviderHandler{Service: providers, Bookings: bookings},
		Availability: &AvailabilityHandler{Service: calendars},
	}
}

var _ AvailabilityService = (*availability.Service)(nil)
