package provider

import (
	"context"
	"errors"

	"tourbook/database/repository"
	"tourbook/models"
	"tourbook/utils"
)

// GetSettings returns the stored settings, or the policy bookings and
// availability apply while none are stored.
func (s *DefaultProviderService) GetSettings(ctx context.Context, providerID string) (*models.ProviderSettings, error) {
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	settings, err := s.Settings.GetByProviderID(ctx, providerID)
	if errors.Is(err, repository.ErrNotFound) {
		fallback := models.UnconfiguredProviderSettings(providerID)
		return &fallback, nil
	}
	if err != nil {
		return nil, utils.NewBackendError(MsgSettingsFailed, err)
	}
	if settings.Availability.IsZero() {
		settings.Availability = models.DefaultWeeklyPattern()
	}
	return settings, nil
}

// ReplaceSettings overwrites every settings field with the request values.
func (s *DefaultProviderService) ReplaceSettings(ctx context.Context, providerID string, req models.SettingsRequest) (*models.ProviderSettings, error) {
	current, err := s.GetSettings(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if req.BufferTime < 0 || req.MaxAdvanceBooking < 0 || req.CancellationDeadline < 0 {
		return nil, utils.ValidationError{Message: MsgSettingsInvalid}
	}

	pattern := current.Availability
	if req.Availability != nil {
		if err := req.Availability.Validate(); err != nil {
			return nil, utils.ValidationError{Message: err.Error()}
		}
		pattern = req.Availability.Normalized()
	}

	now := s.now().UTC()
	next := &models.ProviderSettings{
		ID:                   providerID,
		ProviderID:           providerID,
		BufferTime:           req.BufferTime,
		MaxAdvanceBooking:    req.MaxAdvanceBooking,
		RequireConfirmation:  req.RequireConfirmation,
		AllowCancellation:    req.AllowCancellation,
		CancellationDeadline: req.CancellationDeadline,
		EmailNotifications:   req.EmailNotifications,
		SMSNotifications:     req.SMSNotifications,
		PushNotifications:    req.PushNotifications,
		Availability:         pattern,
		CreatedAt:            current.CreatedAt,
		UpdatedAt:            &now,
	}
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}
	if err := s.Settings.Upsert(ctx, next); err != nil {
		return nil, utils.NewBackendError(MsgSettingsFailed, err)
	}
	return next, nil
}
