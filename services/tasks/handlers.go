package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tourbook/models"
	"tourbook/services/notification"
	"tourbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingReader loads the current state of a booking.
type BookingReader interface {
	Get(ctx context.Context, id string) (*models.Booking, error)
}

// Handlers processes queued booking tasks.
type Handlers struct {
	Notifications notification.NotificationService
	Bookings      BookingReader
}

// Register binds the task handlers to mux.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeBookingNotify, h.HandleNotify)
	mux.HandleFunc(TypeBookingReminder, h.HandleReminder)
}

func (h *Handlers) HandleNotify(ctx context.Context, task *asynq.Task) error {
	var p NotifyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("invalid notify payload: %v: %w", err, asynq.SkipRetry)
	}
	utils.GetLogger().Info("Delivering booking event",
		zap.String("event", p.Event),
		zap.String("bookingId", p.Booking.ID))
	return h.Notifications.NotifyBooking(ctx, p.Event, p.Booking)
}

func (h *Handlers) HandleReminder(ctx context.Context, task *asynq.Task) error {
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}
	logger := utils.GetLogger().With(zap.String("bookingId", p.BookingID))

	b, err := h.Bookings.Get(ctx, p.BookingID)
	if err != nil {
		var notFound utils.NotFoundError
		if errors.As(err, &notFound) {
			logger.Info("Reminder skipped, booking gone")
			return nil
		}
		return err
	}
	if !b.Active() || b.Date != p.Date || b.StartTime != p.StartTime {
		logger.Info("Reminder skipped, booking changed", zap.String("status", b.Status))
		return nil
	}
	return h.Notifications.RemindBooking(ctx, *b)
}
