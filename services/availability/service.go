package availability

import (
	"context"
	"errors"
	"time"

	"tourbook/database/repository"
	bookingRepo "tourbook/database/repository/booking"
	catalogRepo "tourbook/database/repository/catalog"
	providerRepo "tourbook/database/repository/provider"
	settingsRepo "tourbook/database/repository/settings"
	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/utils"

	"go.uber.org/zap"
)

// DefaultHorizonDays is used when a provider has no advance booking limit.
const DefaultHorizonDays = 90

// Query narrows the calendar to a tour length. ServiceID, when set, supplies
// the duration from the catalog.
type Query struct {
	Duration  int
	ServiceID string
}

// Service answers "which slots can still be booked" for a provider.
type Service struct {
	Providers      providerRepo.ProviderRepository
	Settings       settingsRepo.SettingsRepository
	Catalog        catalogRepo.CatalogRepository
	Bookings       bookingRepo.BookingRepository
	Conflicts      *booking.ConflictChecker
	Cache          CalendarCache
	DefaultHorizon int
	Location       *time.Location
	Now            func() time.Time
	Logger         *zap.Logger
}

func (s *Service) today() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

func (s *Service) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

// policy returns the settings and horizon in force for a provider.
func (s *Service) policy(ctx context.Context, providerID string) (models.ProviderSettings, int, error) {
	settings := models.UnconfiguredProviderSettings(providerID)
	stored, err := s.Settings.GetByProviderID(ctx, providerID)
	switch {
	case err == nil:
		settings = *stored
	case !errors.Is(err, repository.ErrNotFound):
		return settings, 0, err
	}
	if settings.Availability.IsZero() {
		settings.Availability = models.DefaultWeeklyPattern()
	}

	horizon := s.DefaultHorizon
	if horizon <= 0 {
		horizon = DefaultHorizonDays
	}
	if settings.MaxAdvanceBooking > 0 {
		horizon = settings.MaxAdvanceBooking
	}
	return settings, horizon, nil
}

// baseCalendar returns the generated calendar, from cache when possible.
func (s *Service) baseCalendar(ctx context.Context, providerID string, today time.Time, pattern models.WeeklyPattern, horizon int) Calendar {
	if s.Cache == nil {
		return Generate(today, pattern, horizon)
	}
	key := CacheKey(providerID, today, pattern, horizon)
	if cal, ok := s.Cache.Get(ctx, key); ok {
		return cal
	}
	cal := Generate(today, pattern, horizon)
	s.Cache.Set(ctx, key, cal)
	return cal.Clone()
}

// ForProvider returns the provider's open slots over its booking horizon with
// taken slots removed under the active conflict policy. Days left without a
// slot are dropped.
func (s *Service) ForProvider(ctx context.Context, providerID string, q Query) (Calendar, error) {
	if _, err := s.Providers.GetByID(ctx, providerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFoundError{Message: "Provider not found"}
		}
		return nil, utils.NewBackendError("Failed to load availability", err)
	}

	duration, err := s.duration(ctx, providerID, q)
	if err != nil {
		return nil, err
	}

	settings, horizon, err := s.policy(ctx, providerID)
	if err != nil {
		return nil, utils.NewBackendError("Failed to load availability", err)
	}

	today := s.today()
	cal := s.baseCalendar(ctx, providerID, today, settings.Availability, horizon)

	// Fail closed: without the booking list no slot can be offered safely.
	existing, err := s.Bookings.List(ctx, bookingRepo.Filter{ProviderID: providerID})
	if err != nil {
		return nil, utils.NewBackendError("Failed to load availability", err)
	}
	byDate := make(map[string][]models.Booking)
	for _, b := range existing {
		if _, open := cal[b.Date]; open && b.Active() {
			byDate[b.Date] = append(byDate[b.Date], b)
		}
	}

	for date, slots := range cal {
		taken := byDate[date]
		if len(taken) == 0 {
			continue
		}
		free := slots[:0]
		for _, slot := range slots {
			candidate := models.Booking{ProviderID: providerID, Date: date, StartTime: slot, Duration: duration}
			collides := false
			for _, b := range taken {
				if s.Conflicts.Collides(candidate, b, settings.BufferTime) {
					collides = true
					break
				}
			}
			if !collides {
				free = append(free, slot)
			}
		}
		if len(free) == 0 {
			delete(cal, date)
			continue
		}
		cal[date] = free
	}

	s.logger().Debug("Availability computed",
		zap.String("providerId", providerID), zap.Int("days", len(cal)), zap.Int("horizon", horizon))
	return cal, nil
}

func (s *Service) duration(ctx context.Context, providerID string, q Query) (int, error) {
	if q.Duration > 0 {
		return q.Duration, nil
	}
	if q.ServiceID != "" && s.Catalog != nil {
		svc, err := s.Catalog.GetByID(ctx, q.ServiceID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, utils.ValidationError{Message: booking.MsgUnknownService}
			}
			return 0, utils.NewBackendError("Failed to load availability", err)
		}
		if svc.ProviderID != providerID {
			return 0, utils.ValidationError{Message: booking.MsgUnknownService}
		}
		if svc.Duration > 0 {
			return svc.Duration, nil
		}
	}
	return 60, nil
}
