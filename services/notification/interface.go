package notification

import (
	"context"
	"time"

	settingsRepo "tourbook/database/repository/settings"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService turns booking events into FCM pushes.
type NotificationService interface {
	// NotifyBooking pushes a lifecycle event to the provider owner and, for
	// changes made on the provider side, to the client when they have an account.
	NotifyBooking(ctx context.Context, event string, booking models.Booking) error
	// RemindBooking pushes an upcoming-tour reminder to both parties.
	RemindBooking(ctx context.Context, booking models.Booking) error
}

// Sender is the part of *messaging.Client the service needs.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ProviderLookup resolves a provider profile by id.
type ProviderLookup interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users     userRepo.UserRepository
	Providers ProviderLookup
	Settings  settingsRepo.SettingsRepository
	Sender    Sender
	Location  *time.Location
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	providers ProviderLookup,
	settings settingsRepo.SettingsRepository,
	sender Sender,
	loc *time.Location,
) *DefaultNotificationService {
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultNotificationService{
		Users:     users,
		Providers: providers,
		Settings:  settings,
		Sender:    sender,
		Location:  loc,
	}
}
