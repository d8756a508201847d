package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"tourbook/database/repository/memory"
	"tourbook/models"

	"firebase.google.com/go/v4/messaging"
)

type fakeSender struct {
	sent []*messaging.Message
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "msg-1", nil
}

func newService(t *testing.T, push bool) (*DefaultNotificationService, *fakeSender) {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepo()
	settings := memory.NewSettingsRepo()
	providers := memory.NewProviderRepo(settings)

	owner := &models.User{ID: "owner", Email: "farm@example.com", Role: models.RoleProvider, FCMToken: "owner-token"}
	client := &models.User{ID: "client", Email: "ona@example.com", Role: models.RoleClient, FCMToken: "client-token"}
	for _, u := range []*models.User{owner, client} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	st := models.DefaultProviderSettings("1")
	st.PushNotifications = push
	if err := providers.CreateWithSettings(ctx, &models.Provider{ID: "1", UserID: "owner", IsActive: true}, &st); err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	sender := &fakeSender{}
	return NewDefaultNotificationService(users, providers, settings, sender, time.UTC), sender
}

func sampleBooking() models.Booking {
	return models.Booking{
		ID: "b1", ProviderID: "1", ClientName: "Ona", ClientEmail: "ona@example.com",
		ServiceName: "Farm tour", Date: "2024-01-15", StartTime: "15:04", Status: models.StatusPending,
	}
}

func TestNotifyCreatedPushesProviderOwner(t *testing.T) {
	svc, sender := newService(t, true)
	if err := svc.NotifyBooking(context.Background(), eventCreated, sampleBooking()); err != nil {
		t.Fatalf("NotifyBooking failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one push, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.Token != "owner-token" || msg.Data["role"] != roleProvider {
		t.Fatalf("unexpected message %+v", msg)
	}
	if !strings.Contains(msg.Notification.Body, "15 January, 3:04 PM") {
		t.Fatalf("unexpected body %q", msg.Notification.Body)
	}
}

func TestNotifyStatusChangeAlsoPushesClient(t *testing.T) {
	svc, sender := newService(t, true)
	b := sampleBooking()
	b.Status = models.StatusConfirmed
	if err := svc.NotifyBooking(context.Background(), eventStatusChanged, b); err != nil {
		t.Fatalf("NotifyBooking failed: %v", err)
	}
	if len(sender.sent) != 2 || sender.sent[1].Token != "client-token" {
		t.Fatalf("expected provider and client pushes, got %d", len(sender.sent))
	}
}

func TestNotifyRespectsPushSetting(t *testing.T) {
	svc, sender := newService(t, false)
	if err := svc.NotifyBooking(context.Background(), eventCreated, sampleBooking()); err != nil {
		t.Fatalf("NotifyBooking failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("push disabled, got %d messages", len(sender.sent))
	}
}

func TestNotifyUnknownEventIsIgnored(t *testing.T) {
	svc, sender := newService(t, true)
	if err := svc.NotifyBooking(context.Background(), "booking.other", sampleBooking()); err != nil {
		t.Fatalf("NotifyBooking failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no push, got %d", len(sender.sent))
	}
}
