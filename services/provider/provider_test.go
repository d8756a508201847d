package provider

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

type fixture struct {
	svc      *DefaultProviderService
	bookings *booking.DefaultBookingService
	owner    *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	settings := memory.NewSettingsRepo()
	providers := memory.NewProviderRepo(settings)
	catalog := memory.NewCatalogRepo()
	bookingStore := memory.NewBookingRepo()
	now := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	bookings := &booking.DefaultBookingService{
		Repo:      bookingStore,
		Settings:  settings,
		Catalog:   catalog,
		Providers: providers,
		Conflicts: booking.NewConflictChecker(bookingStore, booking.PolicyExact),
		Location:  time.UTC,
		Now:       func() time.Time { return now },
	}
	return &fixture{
		svc: &DefaultProviderService{
			Repo:     providers,
			Settings: settings,
			Catalog:  catalog,
			Reviews:  memory.NewReviewRepo(),
			Bookings: bookings,
			Location: time.UTC,
			Now:      func() time.Time { return now },
		},
		bookings: bookings,
		owner:    &models.User{ID: "u-owner", Email: "farm@example.com", Name: "Farmer", Role: models.RoleProvider},
	}
}

func (f *fixture) setup(t *testing.T) *models.Provider {
	t.Helper()
	p, err := f.svc.Setup(context.Background(), f.owner, models.ProviderSetupRequest{BusinessName: "  Sunny Farm "})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return p
}

func TestSetupCreatesProfileAndDefaultSettings(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	if p.BusinessName != "Sunny Farm" || p.UserID != f.owner.ID || !p.IsActive {
		t.Fatalf("unexpected provider %+v", p)
	}

	s, err := f.svc.GetSettings(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s.ProviderID != p.ID || s.BufferTime != 15 || len(s.Availability.DailySlots) != 4 {
		t.Fatalf("expected default settings, got %+v", s)
	}
}

func TestSetupRules(t *testing.T) {
	f := newFixture(t)
	client := &models.User{ID: "u-client", Role: models.RoleClient}
	var forbidden utils.ForbiddenError
	if _, err := f.svc.Setup(context.Background(), client, models.ProviderSetupRequest{BusinessName: "X"}); !errors.As(err, &forbidden) {
		t.Fatalf("clients cannot set up providers, got %v", err)
	}

	var validation utils.ValidationError
	if _, err := f.svc.Setup(context.Background(), f.owner, models.ProviderSetupRequest{}); !errors.As(err, &validation) {
		t.Fatalf("business name is required, got %v", err)
	}

	f.setup(t)
	var conflict utils.ConflictError
	if _, err := f.svc.Setup(context.Background(), f.owner, models.ProviderSetupRequest{BusinessName: "Again"}); !errors.As(err, &conflict) {
		t.Fatalf("second profile should conflict, got %v", err)
	}
}

func TestIsOwner(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	if ok, err := f.svc.IsOwner(context.Background(), p.ID, f.owner.ID); err != nil || !ok {
		t.Fatalf("owner check failed: %v %v", ok, err)
	}
	if ok, _ := f.svc.IsOwner(context.Background(), p.ID, "someone-else"); ok {
		t.Fatal("stranger must not own the provider")
	}
	var notFound utils.NotFoundError
	if _, err := f.svc.IsOwner(context.Background(), "missing", f.owner.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceCatalogLifecycle(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	ctx := context.Background()

	name, duration, price := "Cheese tasting", 90, 25.0
	svc, err := f.svc.CreateService(ctx, p.ID, models.ServiceRequest{Name: &name, Duration: &duration, Price: &price})
	if err != nil {
		t.Fatalf("CreateService failed: %v", err)
	}
	if !svc.IsActive {
		t.Fatal("new services start active")
	}

	zero := 0
	if _, err := f.svc.UpdateService(ctx, p.ID, svc.ID, models.ServiceRequest{Duration: &zero}); err == nil {
		t.Fatal("zero duration must be rejected")
	}

	if _, err := f.svc.DeactivateService(ctx, p.ID, svc.ID); err != nil {
		t.Fatalf("DeactivateService failed: %v", err)
	}
	public, err := f.svc.ListServices(ctx, p.ID, false)
	if err != nil {
		t.Fatalf("ListServices failed: %v", err)
	}
	if len(public) != 0 {
		t.Fatalf("deactivated service should be hidden, got %v", public)
	}
	all, _ := f.svc.ListServices(ctx, p.ID, true)
	if len(all) != 1 {
		t.Fatalf("owner listing should include inactive services, got %v", all)
	}

	var notFound utils.NotFoundError
	if _, err := f.svc.UpdateService(ctx, "other-provider", svc.ID, models.ServiceRequest{}); !errors.As(err, &notFound) {
		t.Fatalf("service of another provider should be not found, got %v", err)
	}
}

func TestReplaceSettingsValidates(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	ctx := context.Background()

	bad := models.SettingsRequest{BufferTime: -5}
	if _, err := f.svc.ReplaceSettings(ctx, p.ID, bad); err == nil {
		t.Fatal("negative buffer must be rejected")
	}
	badPattern := models.SettingsRequest{Availability: &models.WeeklyPattern{OpenDays: []string{"someday"}}}
	if _, err := f.svc.ReplaceSettings(ctx, p.ID, badPattern); err == nil {
		t.Fatal("unknown weekday must be rejected")
	}

	req := models.SettingsRequest{
		BufferTime:        30,
		AllowCancellation: true,
		Availability:      &models.WeeklyPattern{OpenDays: []string{"Sunday"}, DailySlots: []string{"10:00"}},
	}
	got, err := f.svc.ReplaceSettings(ctx, p.ID, req)
	if err != nil {
		t.Fatalf("ReplaceSettings failed: %v", err)
	}
	if got.BufferTime != 30 || got.RequireConfirmation || got.Availability.OpenDays[0] != "sunday" {
		t.Fatalf("unexpected settings %+v", got)
	}
	if got.UpdatedAt == nil {
		t.Fatal("expected updatedAt to be set")
	}
}

func TestReviewsAverage(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	ctx := context.Background()
	author := &models.User{ID: "u-1", Email: "ona@example.com", Name: "Ona", Role: models.RoleClient}

	if _, err := f.svc.CreateReview(ctx, p.ID, author, models.ReviewRequest{Rating: 6}); err == nil {
		t.Fatal("rating above 5 must be rejected")
	}
	for _, r := range []int{5, 4, 4} {
		if _, err := f.svc.CreateReview(ctx, p.ID, author, models.ReviewRequest{Rating: r}); err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}
	}
	summary, err := f.svc.ListReviews(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListReviews failed: %v", err)
	}
	if summary.Count != 3 || summary.AverageRating != 4.3 {
		t.Fatalf("unexpected summary count=%d avg=%v", summary.Count, summary.AverageRating)
	}
}

func TestReviewOfSomeoneElsesBooking(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	ctx := context.Background()
	b, err := f.bookings.Create(ctx, models.BookingRequest{
		ProviderID: p.ID, ClientName: "Jonas", ClientEmail: "jonas@example.com",
		Service: "Farm tour", Date: "2024-01-16", Time: "09:00",
	})
	if err != nil {
		t.Fatalf("booking Create failed: %v", err)
	}
	author := &models.User{ID: "u-1", Email: "ona@example.com", Role: models.RoleClient}
	var forbidden utils.ForbiddenError
	if _, err := f.svc.CreateReview(ctx, p.ID, author, models.ReviewRequest{BookingID: b.ID, Rating: 5}); !errors.As(err, &forbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	p := f.setup(t)
	ctx := context.Background()

	mk := func(date, start string) *models.Booking {
		b, err := f.bookings.Create(ctx, models.BookingRequest{
			ProviderID: p.ID, ClientName: "Ona", ClientEmail: "ona@example.com",
			Service: "Farm tour", Date: date, Time: start,
		})
		if err != nil {
			t.Fatalf("booking Create failed: %v", err)
		}
		return b
	}
	mk("2024-01-15", "09:00")
	confirmed := mk("2024-01-15", "11:00")
	done := mk("2024-01-16", "09:00")

	status := models.StatusConfirmed
	if _, err := f.bookings.Update(ctx, confirmed.ID, models.BookingPatch{Status: &status}); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	completed, price := models.StatusCompleted, 120.0
	if _, err := f.bookings.Update(ctx, done.ID, models.BookingPatch{Status: &completed, Price: &price}); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	stats, err := f.svc.Dashboard(ctx, p.ID)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if stats.TodayBookings != 2 || stats.PendingBookings != 1 || stats.ConfirmedBookings != 1 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.TotalRevenue != 120 || len(stats.RecentBookings) != 3 {
		t.Fatalf("unexpected revenue or recent list: %v %d", stats.TotalRevenue, len(stats.RecentBookings))
	}
}

func TestSummarizeLimitsRecent(t *testing.T) {
	bookings := make([]models.Booking, 8)
	for i := range bookings {
		bookings[i] = models.Booking{ID: string(rune('a' + i)), Status: models.StatusPending, Date: "2024-01-15"}
	}
	stats := summarize(bookings, "2024-01-15")
	if len(stats.RecentBookings) != 5 || stats.RecentBookings[0].ID != "a" {
		t.Fatalf("expected the first five bookings, got %v", stats.RecentBookings)
	}
	if stats.TodayBookings != 8 || stats.PendingBookings != 8 {
		t.Fatalf("unexpected counts %+v", stats)
	}
}
