package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourbook/database/repository/memory"
	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/utils"
)

type serviceFixture struct {
	svc       *Service
	bookings  *memory.BookingRepo
	settings  *memory.SettingsRepo
	providers *memory.ProviderRepo
	catalog   *memory.CatalogRepo
	cache     *LRUCalendarCache
}

func newServiceFixture(t *testing.T, policy booking.Policy) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		bookings: memory.NewBookingRepo(),
		settings: memory.NewSettingsRepo(),
		catalog:  memory.NewCatalogRepo(),
	}
	f.providers = memory.NewProviderRepo(f.settings)
	cache, err := NewLRUCalendarCache(16)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	f.cache = cache

	// Monday 2024-01-15 at noon.
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	f.svc = &Service{
		Providers: f.providers,
		Settings:  f.settings,
		Catalog:   f.catalog,
		Bookings:  f.bookings,
		Conflicts: booking.NewConflictChecker(f.bookings, policy),
		Cache:     cache,
		Location:  time.UTC,
		Now:       func() time.Time { return now },
	}

	settings := models.DefaultProviderSettings("1")
	settings.MaxAdvanceBooking = 7
	settings.BufferTime = 0
	p := &models.Provider{ID: "1", UserID: "owner", BusinessName: "Sunny Farm", IsActive: true}
	if err := f.providers.CreateWithSettings(context.Background(), p, &settings); err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	return f
}

func (f *serviceFixture) book(t *testing.T, date, start string, duration int, status string) {
	t.Helper()
	b := &models.Booking{
		ID:         date + start,
		ProviderID: "1",
		Date:       date,
		StartTime:  start,
		Duration:   duration,
		Status:     status,
	}
	b.SlotKey = b.ActiveSlotKey()
	if err := f.bookings.Create(context.Background(), b); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
}

func TestForProviderUnknownProvider(t *testing.T) {
	f := newServiceFixture(t, booking.PolicyExact)
	_, err := f.svc.ForProvider(context.Background(), "nope", Query{})
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestForProviderRemovesTakenSlots(t *testing.T) {
	f := newServiceFixture(t, booking.PolicyExact)
	f.book(t, "2024-01-16", "09:00", 60, models.StatusConfirmed)
	f.book(t, "2024-01-16", "13:00", 60, models.StatusCancelled)
	for _, s := range []string{"09:00", "11:00", "13:00", "15:00"} {
		f.book(t, "2024-01-17", s, 60, models.StatusPending)
	}

	cal, err := f.svc.ForProvider(context.Background(), "1", Query{})
	if err != nil {
		t.Fatalf("ForProvider failed: %v", err)
	}
	tue := cal["2024-01-16"]
	if len(tue) != 3 || tue[0] != "11:00" {
		t.Fatalf("expected 09:00 removed and cancelled 13:00 kept, got %v", tue)
	}
	if _, ok := cal["2024-01-17"]; ok {
		t.Fatal("a fully booked day must be dropped")
	}
	if len(cal["2024-01-18"]) != 4 {
		t.Fatalf("untouched day should keep all slots, got %v", cal["2024-01-18"])
	}
	// Horizon of 7 days from monday 15th reaches monday 22nd; five open days minus the full one.
	if len(cal) != 4 {
		t.Fatalf("expected 4 days, got %d: %v", len(cal), cal)
	}
}

func TestForProviderOverlapUsesDuration(t *testing.T) {
	f := newServiceFixture(t, booking.PolicyOverlap)
	f.book(t, "2024-01-16", "10:00", 90, models.StatusConfirmed)

	cal, err := f.svc.ForProvider(context.Background(), "1", Query{Duration: 60})
	if err != nil {
		t.Fatalf("ForProvider failed: %v", err)
	}
	// 09:00-10:00 ends as 10:00 starts, 11:00 starts inside 10:00-11:30.
	got := cal["2024-01-16"]
	if len(got) != 3 || got[0] != "09:00" || got[1] != "13:00" {
		t.Fatalf("unexpected slots %v", got)
	}

	cal, err = f.svc.ForProvider(context.Background(), "1", Query{Duration: 120})
	if err != nil {
		t.Fatalf("ForProvider failed: %v", err)
	}
	got = cal["2024-01-16"]
	if len(got) != 2 || got[0] != "13:00" {
		t.Fatalf("a 2h tour at 09:00 overlaps the 10:00 booking, got %v", got)
	}
}

func TestForProviderDoesNotPoisonCache(t *testing.T) {
	f := newServiceFixture(t, booking.PolicyExact)
	f.book(t, "2024-01-16", "09:00", 60, models.StatusConfirmed)

	if _, err := f.svc.ForProvider(context.Background(), "1", Query{}); err != nil {
		t.Fatalf("ForProvider failed: %v", err)
	}
	if f.cache.Len() != 1 {
		t.Fatalf("expected one cached calendar, got %d", f.cache.Len())
	}
	if _, err := f.bookings.Delete(context.Background(), "2024-01-1609:00"); err != nil {
		t.Fatalf("delete booking: %v", err)
	}
	cal, err := f.svc.ForProvider(context.Background(), "1", Query{})
	if err != nil {
		t.Fatalf("ForProvider failed: %v", err)
	}
	if len(cal["2024-01-16"]) != 4 {
		t.Fatalf("freed slot should be offered again, got %v", cal["2024-01-16"])
	}
}

func TestForProviderFailsClosed(t *testing.T) {
	f := newServiceFixture(t, booking.PolicyExact)
	f.bookings.Err = errors.New("store down")
	_, err := f.svc.ForProvider(context.Background(), "1", Query{})
	var backend utils.BackendError
	if !errors.As(err, &backend) {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestForProviderUnknownService(t *testing.T) {
	f := newServiceFixture(t, booking.PolicyExact)
	_, err := f.svc.ForProvider(context.Background(), "1", Query{ServiceID: "ghost"})
	var validation utils.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
