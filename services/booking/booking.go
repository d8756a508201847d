package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"tourbook/database/repository"
	bookingRepo "tourbook/database/repository/booking"
	catalogRepo "tourbook/database/repository/catalog"
	settingsRepo "tourbook/database/repository/settings"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultDuration = 60
	defaultPrice    = 0.0
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Settings  settingsRepo.SettingsRepository
	Catalog   catalogRepo.CatalogRepository
	Providers OwnerLookup
	Conflicts *ConflictChecker
	Notifier  Notifier
	Location  *time.Location
	Now       func() time.Time
	Logger    *zap.Logger
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

// settingsFor returns the provider's settings, or UnconfiguredProviderSettings
// when none are stored.
func (s *DefaultBookingService) settingsFor(ctx context.Context, providerID string) (models.ProviderSettings, error) {
	fallback := models.UnconfiguredProviderSettings(providerID)
	if s.Settings == nil {
		return fallback, nil
	}
	st, err := s.Settings.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fallback, nil
		}
		return fallback, err
	}
	return *st, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Create validates the request, applies defaults, rejects conflicting slots
// and stores the booking.
func (s *DefaultBookingService) Create(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	b := models.Booking{
		ProviderID:  strings.TrimSpace(req.ProviderID),
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
		ServiceID:   strings.TrimSpace(req.ServiceID),
		ServiceName: firstNonEmpty(req.Service, req.ServiceName),
		Date:        strings.TrimSpace(req.Date),
		StartTime:   firstNonEmpty(req.Time, req.StartTime),
		PartySize:   req.PartySize,
		Notes:       req.Notes,
		Duration:    defaultDuration,
		Price:       defaultPrice,
	}

	if b.ProviderID == "" || b.ClientName == "" || b.ClientEmail == "" || b.Date == "" || b.StartTime == "" ||
		(b.ServiceName == "" && b.ServiceID == "") {
		return nil, utils.ValidationError{Message: MsgMissingFields}
	}
	if _, err := models.ParseDate(b.Date, s.location()); err != nil {
		return nil, utils.ValidationError{Message: MsgInvalidDate}
	}
	if _, err := models.ParseClock(b.StartTime); err != nil {
		return nil, utils.ValidationError{Message: MsgInvalidTime}
	}
	if b.PartySize < 0 {
		b.PartySize = 0
	}

	if b.ServiceID != "" {
		if err := s.applyCatalogDefaults(ctx, &b, req); err != nil {
			return nil, err
		}
	}
	// A zero or negative duration falls back to the catalog or default length.
	if req.Duration != nil && *req.Duration > 0 {
		b.Duration = *req.Duration
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if b.Duration <= 0 {
		return nil, utils.ValidationError{Message: MsgInvalidDuration}
	}
	if b.Price < 0 {
		return nil, utils.ValidationError{Message: MsgInvalidPrice}
	}

	settings, err := s.settingsFor(ctx, b.ProviderID)
	if err != nil {
		return nil, utils.NewBackendError(MsgCreateFailed, err)
	}

	conflict, err := s.Conflicts.Check(ctx, b, settings.BufferTime)
	if err != nil {
		var validation utils.ValidationError
		if errors.As(err, &validation) {
			return nil, err
		}
		return nil, utils.NewBackendError(MsgCreateFailed, err)
	}
	if conflict {
		return nil, utils.ConflictError{Message: MsgSlotTaken}
	}

	endTime, _ := models.AddMinutes(b.StartTime, b.Duration)
	b.ID = uuid.New().String()
	b.EndTime = endTime
	b.CreatedAt = s.now().UTC()
	b.Version = 1
	b.Status = models.StatusPending
	if !settings.RequireConfirmation {
		b.Status = models.StatusConfirmed
	}
	b.SlotKey = b.ActiveSlotKey()

	if err := s.Repo.Create(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, utils.ConflictError{Message: MsgSlotTaken}
		}
		return nil, utils.NewBackendError(MsgCreateFailed, err)
	}

	s.logger().Info("Booking created",
		zap.String("bookingId", b.ID),
		zap.String("providerId", b.ProviderID),
		zap.String("date", b.Date),
		zap.String("startTime", b.StartTime))
	s.notify(ctx, EventCreated, b)
	return &b, nil
}

// applyCatalogDefaults fills name, duration and price from the provider's catalog.
// Price is per person when a party size is given.
func (s *DefaultBookingService) applyCatalogDefaults(ctx context.Context, b *models.Booking, req models.BookingRequest) error {
	if s.Catalog == nil {
		return utils.ValidationError{Message: MsgUnknownService}
	}
	svc, err := s.Catalog.GetByID(ctx, b.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ValidationError{Message: MsgUnknownService}
		}
		return utils.NewBackendError(MsgCreateFailed, err)
	}
	if svc.ProviderID != b.ProviderID || !svc.IsActive {
		return utils.ValidationError{Message: MsgUnknownService}
	}
	if b.ServiceName == "" {
		b.ServiceName = svc.Name
	}
	if (req.Duration == nil || *req.Duration <= 0) && svc.Duration > 0 {
		b.Duration = svc.Duration
	}
	if req.Price == nil {
		people := b.PartySize
		if people < 1 {
			people = 1
		}
		b.Price = svc.Price * float64(people)
	}
	return nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: MsgNotFound}
		}
		return nil, utils.NewBackendError(MsgFetchFailed, err)
	}
	return b, nil
}

// List returns bookings matching every non-empty filter field. The value
// "all" is treated as no filter.
func (s *DefaultBookingService) List(ctx context.Context, filter bookingRepo.Filter) ([]models.Booking, error) {
	clean := func(v string) string {
		v = strings.TrimSpace(v)
		if v == "all" {
			return ""
		}
		return v
	}
	filter = bookingRepo.Filter{
		ProviderID: clean(filter.ProviderID),
		Status:     clean(filter.Status),
		Date:       clean(filter.Date),
	}
	bookings, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, utils.NewBackendError(MsgFetchFailed, err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) ListByProvider(ctx context.Context, providerID string) []models.Booking {
	bookings, err := s.Repo.List(ctx, bookingRepo.Filter{ProviderID: providerID})
	if err != nil {
		s.logger().Error("Failed to list provider bookings, returning empty list",
			zap.String("providerId", providerID), zap.Error(err))
		return []models.Booking{}
	}
	return bookings
}

// Delete removes the booking and frees its slot. Removing a booking that still
// holds its slot counts as cancelling it.
func (s *DefaultBookingService) Delete(ctx context.Context, id string) (*models.Booking, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Active() {
		if err := s.checkCancellationPolicy(ctx, current); err != nil {
			return nil, err
		}
	}

	removed, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: MsgNotFound}
		}
		return nil, utils.NewBackendError(MsgDeleteFailed, err)
	}
	s.logger().Info("Booking deleted", zap.String("bookingId", id))
	s.notify(ctx, EventDeleted, *removed)
	return removed, nil
}

func (s *DefaultBookingService) notify(ctx context.Context, event string, b models.Booking) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(ctx, event, b); err != nil {
		s.logger().Warn("Failed to publish booking event",
			zap.String("event", event), zap.String("bookingId", b.ID), zap.Error(err))
	}
}
