package tasks

import (
	"context"
	"errors"
	"time"

	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Queue is the part of *asynq.Client the enqueuer uses.
type Queue interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer implements booking.Notifier by handing events to the asynq queue.
type Enqueuer struct {
	Client   Queue
	Location *time.Location
	Now      func() time.Time
}

var _ booking.Notifier = (*Enqueuer)(nil)

func NewEnqueuer(client Queue, loc *time.Location) *Enqueuer {
	return &Enqueuer{Client: client, Location: loc}
}

func (e *Enqueuer) Notify(ctx context.Context, event string, b models.Booking) error {
	task, err := NewNotifyTask(event, b)
	if err != nil {
		return err
	}
	if _, err := e.Client.EnqueueContext(ctx, task); err != nil {
		return err
	}

	if remindsAfter(event) {
		return e.scheduleReminder(ctx, b)
	}
	return nil
}

// remindsAfter reports whether a booking that is still active after event
// needs a reminder for its current slot. Reminder task ids are per slot, so
// an already scheduled reminder is not duplicated.
func remindsAfter(event string) bool {
	switch event {
	case booking.EventCreated, booking.EventRescheduled, booking.EventStatusChanged:
		return true
	}
	return false
}

func (e *Enqueuer) scheduleReminder(ctx context.Context, b models.Booking) error {
	if !b.Active() {
		return nil
	}
	fireAt, ok := ReminderTime(b, e.location(), e.now())
	if !ok {
		return nil
	}
	task, opts, err := NewReminderTask(b, fireAt)
	if err != nil {
		return err
	}
	info, err := e.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	utils.GetLogger().Debug("Reminder scheduled",
		zap.String("bookingId", b.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// ReminderTime is ReminderLead before the booking start, or false when that
// moment has already passed or the booking date cannot be parsed.
func ReminderTime(b models.Booking, loc *time.Location, now time.Time) (time.Time, bool) {
	day, err := models.ParseDate(b.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	minutes, err := models.ParseClock(b.StartTime)
	if err != nil {
		return time.Time{}, false
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, loc)
	fireAt := start.Add(-ReminderLead)
	if !fireAt.After(now) {
		return time.Time{}, false
	}
	return fireAt, true
}

func (e *Enqueuer) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.UTC
}

func (e *Enqueuer) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
