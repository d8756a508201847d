package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// applyPatch merges the non-nil fields of patch into b.
func applyPatch(b *models.Booking, patch models.BookingPatch, loc *time.Location) error {
	if patch.ClientName != nil {
		b.ClientName = strings.TrimSpace(*patch.ClientName)
	}
	if patch.ClientEmail != nil {
		b.ClientEmail = strings.TrimSpace(*patch.ClientEmail)
	}
	if patch.ClientPhone != nil {
		b.ClientPhone = strings.TrimSpace(*patch.ClientPhone)
	}
	if patch.ServiceID != nil {
		b.ServiceID = strings.TrimSpace(*patch.ServiceID)
	}
	if patch.ServiceName != nil {
		b.ServiceName = strings.TrimSpace(*patch.ServiceName)
	}
	if patch.Service != nil {
		b.ServiceName = strings.TrimSpace(*patch.Service)
	}
	if patch.Date != nil {
		if _, err := models.ParseDate(*patch.Date, loc); err != nil {
			return utils.ValidationError{Message: MsgInvalidDate}
		}
		b.Date = *patch.Date
	}
	start := patch.StartTime
	if patch.Time != nil {
		start = patch.Time
	}
	if start != nil {
		if _, err := models.ParseClock(*start); err != nil {
			return utils.ValidationError{Message: MsgInvalidTime}
		}
		b.StartTime = *start
	}
	if patch.Duration != nil {
		if *patch.Duration <= 0 {
			return utils.ValidationError{Message: MsgInvalidDuration}
		}
		b.Duration = *patch.Duration
	}
	if patch.PartySize != nil && *patch.PartySize >= 0 {
		b.PartySize = *patch.PartySize
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return utils.ValidationError{Message: MsgInvalidPrice}
		}
		b.Price = *patch.Price
	}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return utils.ValidationError{Message: MsgInvalidStatus}
		}
		b.Status = *patch.Status
	}
	if patch.Notes != nil {
		b.Notes = *patch.Notes
	}
	return nil
}

// Update merges patch into the stored booking. Any status may follow any
// other, but cancelling is subject to the provider's cancellation policy.
// The slot is re-checked when it moves or when a cancelled booking is revived.
func (s *DefaultBookingService) Update(ctx context.Context, id string, patch models.BookingPatch) (*models.Booking, error) {
	return s.update(ctx, id, patch, true)
}

// update applies patch. With enforcePolicy unset the caller has already
// authorized a cancellation.
func (s *DefaultBookingService) update(ctx context.Context, id string, patch models.BookingPatch, enforcePolicy bool) (*models.Booking, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if err := applyPatch(&next, patch, s.location()); err != nil {
		return nil, err
	}

	if enforcePolicy && current.Active() && !next.Active() {
		if err := s.checkCancellationPolicy(ctx, current); err != nil {
			return nil, err
		}
	}

	slotMoved := next.Date != current.Date || next.StartTime != current.StartTime ||
		(s.Conflicts.Policy == PolicyOverlap && next.Duration != current.Duration)
	revived := !current.Active() && next.Active()

	if next.Active() && (slotMoved || revived) {
		settings, err := s.settingsFor(ctx, next.ProviderID)
		if err != nil {
			return nil, utils.NewBackendError(MsgUpdateFailed, err)
		}
		conflict, err := s.Conflicts.Check(ctx, next, settings.BufferTime)
		if err != nil {
			return nil, utils.NewBackendError(MsgUpdateFailed, err)
		}
		if conflict {
			return nil, utils.ConflictError{Message: MsgSlotTaken}
		}
	}

	if next.StartTime != current.StartTime || next.Duration != current.Duration {
		next.EndTime, _ = models.AddMinutes(next.StartTime, next.Duration)
	}
	now := s.now().UTC()
	next.UpdatedAt = &now
	next.Version = current.Version + 1
	next.SlotKey = next.ActiveSlotKey()

	if err := s.Repo.Update(ctx, &next, current.Version); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, utils.NotFoundError{Message: MsgNotFound}
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, utils.ConflictError{Message: MsgSlotTaken}
		case errors.Is(err, repository.ErrVersionConflict):
			return nil, utils.ConflictError{Message: MsgModified}
		default:
			return nil, utils.NewBackendError(MsgUpdateFailed, err)
		}
	}

	switch {
	case !next.Active() && current.Active():
		s.notify(ctx, EventCancelled, next)
	case next.Status != current.Status:
		s.notify(ctx, EventStatusChanged, next)
	case slotMoved:
		s.notify(ctx, EventRescheduled, next)
	}
	return &next, nil
}

// Cancel marks the booking cancelled on behalf of actor. The provider that
// owns the booking may always cancel; clients may cancel their own bookings
// while the provider allows it and the deadline has not passed.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string, actor *models.User) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == models.StatusCancelled {
		return b, nil
	}

	owner, err := s.isProviderOwner(ctx, b.ProviderID, actor)
	if err != nil {
		return nil, utils.NewBackendError(MsgUpdateFailed, err)
	}
	if !owner {
		if err := s.checkClientCancellation(ctx, b, actor); err != nil {
			return nil, err
		}
	}

	status := models.StatusCancelled
	cancelled, err := s.update(ctx, id, models.BookingPatch{Status: &status}, false)
	if err != nil {
		return nil, err
	}
	s.logger().Info("Booking cancelled",
		zap.String("bookingId", id), zap.String("by", actor.ID), zap.Bool("provider", owner))
	return cancelled, nil
}

func (s *DefaultBookingService) isProviderOwner(ctx context.Context, providerID string, actor *models.User) (bool, error) {
	if actor == nil || actor.Role != models.RoleProvider || s.Providers == nil {
		return false, nil
	}
	p, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return p.UserID == actor.ID, nil
}

func (s *DefaultBookingService) checkClientCancellation(ctx context.Context, b *models.Booking, actor *models.User) error {
	if actor == nil || !strings.EqualFold(actor.Email, b.ClientEmail) {
		return utils.ForbiddenError{Message: MsgNotYourBooking}
	}
	return s.checkCancellationPolicy(ctx, b)
}

// checkCancellationPolicy applies AllowCancellation and CancellationDeadline.
// Only the owning provider, through Cancel, is exempt.
func (s *DefaultBookingService) checkCancellationPolicy(ctx context.Context, b *models.Booking) error {
	settings, err := s.settingsFor(ctx, b.ProviderID)
	if err != nil {
		return utils.NewBackendError(MsgUpdateFailed, err)
	}
	if !settings.AllowCancellation {
		return utils.ForbiddenError{Message: MsgCancelNotAllowed}
	}
	if settings.CancellationDeadline > 0 {
		start, err := startsAt(*b, s.location())
		if err != nil {
			return utils.NewBackendError(MsgUpdateFailed, err)
		}
		deadline := start.Add(-time.Duration(settings.CancellationDeadline) * time.Hour)
		if s.now().After(deadline) {
			return utils.ForbiddenError{Message: MsgCancelDeadline}
		}
	}
	return nil
}

// startsAt returns the booking's start as an instant in the business timezone.
func startsAt(b models.Booking, loc *time.Location) (time.Time, error) {
	day, err := models.ParseDate(b.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := models.ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}
