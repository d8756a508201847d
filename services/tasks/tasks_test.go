package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tourbook/models"
	"tourbook/utils"

	"github.com/hibiken/asynq"
)

func TestReminderTime(t *testing.T) {
	b := models.Booking{Date: "2024-01-15", StartTime: "10:00"}
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	fireAt, ok := ReminderTime(b, time.UTC, now)
	if !ok {
		t.Fatal("expected a reminder time")
	}
	if want := time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC); !fireAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, fireAt)
	}

	late := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	if _, ok := ReminderTime(b, time.UTC, late); ok {
		t.Fatal("no reminder once the lead time has passed")
	}
	if _, ok := ReminderTime(models.Booking{Date: "soon", StartTime: "10:00"}, time.UTC, now); ok {
		t.Fatal("unparseable date should not schedule")
	}
}

func TestNewReminderTaskPayload(t *testing.T) {
	b := models.Booking{ID: "b1", Date: "2024-01-15", StartTime: "10:00"}
	task, opts, err := NewReminderTask(b, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("NewReminderTask failed: %v", err)
	}
	if task.Type() != TypeBookingReminder || len(opts) == 0 {
		t.Fatalf("unexpected task %s with %d options", task.Type(), len(opts))
	}
	var p ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if p.BookingID != "b1" || p.Date != "2024-01-15" || p.StartTime != "10:00" {
		t.Fatalf("unexpected payload %+v", p)
	}
}

type fakeNotifications struct {
	events    []string
	reminders []string
}

func (f *fakeNotifications) NotifyBooking(_ context.Context, event string, b models.Booking) error {
	f.events = append(f.events, event+":"+b.ID)
	return nil
}

func (f *fakeNotifications) RemindBooking(_ context.Context, b models.Booking) error {
	f.reminders = append(f.reminders, b.ID)
	return nil
}

type fakeBookings map[string]models.Booking

func (f fakeBookings) Get(_ context.Context, id string) (*models.Booking, error) {
	b, ok := f[id]
	if !ok {
		return nil, utils.NotFoundError{Message: "Booking not found"}
	}
	return &b, nil
}

func reminderTask(t *testing.T, id, date, start string) *asynq.Task {
	t.Helper()
	raw, err := json.Marshal(ReminderPayload{BookingID: id, Date: date, StartTime: start})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return asynq.NewTask(TypeBookingReminder, raw)
}

func TestHandleReminderSkipsStaleBookings(t *testing.T) {
	notes := &fakeNotifications{}
	h := &Handlers{
		Notifications: notes,
		Bookings: fakeBookings{
			"live":      {ID: "live", Date: "2024-01-15", StartTime: "10:00", Status: models.StatusConfirmed},
			"moved":     {ID: "moved", Date: "2024-01-16", StartTime: "10:00", Status: models.StatusConfirmed},
			"cancelled": {ID: "cancelled", Date: "2024-01-15", StartTime: "10:00", Status: models.StatusCancelled},
		},
	}
	ctx := context.Background()
	for _, id := range []string{"live", "moved", "cancelled", "deleted"} {
		if err := h.HandleReminder(ctx, reminderTask(t, id, "2024-01-15", "10:00")); err != nil {
			t.Fatalf("HandleReminder(%s) failed: %v", id, err)
		}
	}
	if len(notes.reminders) != 1 || notes.reminders[0] != "live" {
		t.Fatalf("only the unchanged booking should be reminded, got %v", notes.reminders)
	}
}

func TestHandleNotify(t *testing.T) {
	notes := &fakeNotifications{}
	h := &Handlers{Notifications: notes}
	task, err := NewNotifyTask("booking.created", models.Booking{ID: "b1"})
	if err != nil {
		t.Fatalf("NewNotifyTask failed: %v", err)
	}
	if err := h.HandleNotify(context.Background(), task); err != nil {
		t.Fatalf("HandleNotify failed: %v", err)
	}
	if len(notes.events) != 1 || notes.events[0] != "booking.created:b1" {
		t.Fatalf("unexpected events %v", notes.events)
	}

	if err := h.HandleNotify(context.Background(), asynq.NewTask(TypeBookingNotify, []byte("{"))); err == nil {
		t.Fatal("malformed payload should fail")
	}
}

type recordingQueue struct {
	tasks []*asynq.Task
	ids   map[string]bool
}

func (q *recordingQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.ids == nil {
		q.ids = make(map[string]bool)
	}
	for _, o := range opts {
		if o.Type() != asynq.TaskIDOpt {
			continue
		}
		id := o.Value().(string)
		if q.ids[id] {
			return nil, asynq.ErrTaskIDConflict
		}
		q.ids[id] = true
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: task.Type()}, nil
}

func (q *recordingQueue) reminders() int {
	n := 0
	for _, task := range q.tasks {
		if task.Type() == TypeBookingReminder {
			n++
		}
	}
	return n
}

func TestEnqueuerSchedulesReminderForEachSlot(t *testing.T) {
	queue := &recordingQueue{}
	e := &Enqueuer{
		Client:   queue,
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC) },
	}
	ctx := context.Background()
	b := models.Booking{ID: "b1", Date: "2024-01-15", StartTime: "10:00", Status: models.StatusPending}

	if err := e.Notify(ctx, "booking.created", b); err != nil {
		t.Fatalf("Notify created failed: %v", err)
	}
	b.Status = models.StatusConfirmed
	if err := e.Notify(ctx, "booking.status_changed", b); err != nil {
		t.Fatalf("Notify status change failed: %v", err)
	}
	if got := queue.reminders(); got != 1 {
		t.Fatalf("same slot should keep one reminder, got %d", got)
	}

	// Status and slot changed in one update.
	b.StartTime = "15:00"
	if err := e.Notify(ctx, "booking.status_changed", b); err != nil {
		t.Fatalf("Notify move failed: %v", err)
	}
	if got := queue.reminders(); got != 2 {
		t.Fatalf("moved booking needs a reminder for the new slot, got %d", got)
	}

	b.Status = models.StatusCancelled
	if err := e.Notify(ctx, "booking.cancelled", b); err != nil {
		t.Fatalf("Notify cancel failed: %v", err)
	}
	if got := queue.reminders(); got != 2 {
		t.Fatalf("cancelled booking must not be reminded, got %d", got)
	}
	if len(queue.tasks) != 6 {
		t.Fatalf("expected four notify tasks and two reminders, got %d tasks", len(queue.tasks))
	}
}
