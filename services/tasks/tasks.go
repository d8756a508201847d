package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"tourbook/models"

	"github.com/hibiken/asynq"
)

// Task types handled by the worker.
const (
	TypeBookingNotify   = "booking:notify"
	TypeBookingReminder = "booking:reminder"
)

// ReminderLead is how long before the tour start the reminder fires.
const ReminderLead = 24 * time.Hour

// NotifyPayload carries a booking event snapshot.
type NotifyPayload struct {
	Event   string         `json:"event"`
	Booking models.Booking `json:"booking"`
}

// ReminderPayload identifies the booking slot the reminder was scheduled for.
// A booking moved or cancelled since then no longer matches and is skipped.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

func NewNotifyTask(event string, booking models.Booking) (*asynq.Task, error) {
	b, err := json.Marshal(NotifyPayload{Event: event, Booking: booking})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingNotify, b, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

func NewReminderTask(booking models.Booking, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	payload := ReminderPayload{BookingID: booking.ID, Date: booking.Date, StartTime: booking.StartTime}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID(reminderTaskID(payload)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

func reminderTaskID(p ReminderPayload) string {
	return fmt.Sprintf("reminder:%s:%s:%s", p.BookingID, p.Date, p.StartTime)
}
