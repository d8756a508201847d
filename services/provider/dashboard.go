package provider

import (
	"context"
	"time"

	"tourbook/models"
)

const recentBookingsLimit = 5

// Dashboard summarises the provider's bookings. A failing booking store yields
// an empty dashboard rather than an error.
func (s *DefaultProviderService) Dashboard(ctx context.Context, providerID string) (*models.DashboardStats, error) {
	if _, err := s.GetProvider(ctx, providerID); err != nil {
		return nil, err
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	bookings := s.Bookings.ListByProvider(ctx, providerID)
	return summarize(bookings, s.now().In(loc).Format(models.DateLayout)), nil
}

// summarize expects bookings newest first.
func summarize(bookings []models.Booking, today string) *models.DashboardStats {
	stats := &models.DashboardStats{RecentBookings: []models.Booking{}}
	for _, b := range bookings {
		if b.Date == today && b.Status != models.StatusCancelled {
			stats.TodayBookings++
		}
		switch b.Status {
		case models.StatusPending:
			stats.PendingBookings++
		case models.StatusConfirmed:
			stats.ConfirmedBookings++
		case models.StatusCompleted:
			stats.TotalRevenue += b.Price
		}
	}
	if len(bookings) > recentBookingsLimit {
		bookings = bookings[:recentBookingsLimit]
	}
	stats.RecentBookings = append(stats.RecentBookings, bookings...)
	return stats
}
