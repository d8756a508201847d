package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourbook/models"
	"tourbook/utils"
)

func seedProvider(t *testing.T, f *fixture, settings models.ProviderSettings) {
	t.Helper()
	p := &models.Provider{ID: "1", UserID: "owner-1", BusinessName: "Sunny Farm", IsActive: true}
	if err := f.providers.CreateWithSettings(context.Background(), p, &settings); err != nil {
		t.Fatalf("seed provider failed: %v", err)
	}
}

func TestCancelByClientWithinDeadline(t *testing.T) {
	f := newFixture(t, PolicyExact)
	seedProvider(t, f, models.DefaultProviderSettings("1"))
	b, err := f.svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	client := &models.User{ID: "u-1", Email: "ONA@example.com", Role: models.RoleClient}
	got, err := f.svc.Cancel(context.Background(), b.ID, client)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
	if last := f.notifier.events[len(f.notifier.events)-1]; last != EventCancelled {
		t.Fatalf("expected cancelled event, got %s", last)
	}
}

func TestCancelByClientAfterDeadline(t *testing.T) {
	f := newFixture(t, PolicyExact)
	seedProvider(t, f, models.DefaultProviderSettings("1"))
	b, err := f.svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	f.now = time.Date(2024, 1, 14, 11, 0, 0, 0, time.UTC)

	client := &models.User{ID: "u-1", Email: "ona@example.com", Role: models.RoleClient}
	_, err = f.svc.Cancel(context.Background(), b.ID, client)
	var forbidden utils.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Message != MsgCancelDeadline {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestCancelRejectsOtherClient(t *testing.T) {
	f := newFixture(t, PolicyExact)
	seedProvider(t, f, models.DefaultProviderSettings("1"))
	b, err := f.svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	stranger := &models.User{ID: "u-2", Email: "jonas@example.com", Role: models.RoleClient}
	_, err = f.svc.Cancel(context.Background(), b.ID, stranger)
	var forbidden utils.ForbiddenError
	if !errors.As(err, &forbidden) || forbidden.Message != MsgNotYourBooking {
		t.Fatalf("expected not-your-booking error, got %v", err)
	}
}

func TestCancelByOwnerIgnoresClientRules(t *testing.T) {
	f := newFixture(t, PolicyExact)
	settings := models.DefaultProviderSettings("1")
	settings.AllowCancellation = false
	seedProvider(t, f, settings)
	b, err := f.svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	f.now = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	client := &models.User{ID: "u-1", Email: "ona@example.com", Role: models.RoleClient}
	if _, err := f.svc.Cancel(context.Background(), b.ID, client); err == nil {
		t.Fatal("client cancellation should be disabled")
	}

	owner := &models.User{ID: "owner-1", Email: "farm@example.com", Role: models.RoleProvider}
	got, err := f.svc.Cancel(context.Background(), b.ID, owner)
	if err != nil {
		t.Fatalf("owner Cancel failed: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
}
