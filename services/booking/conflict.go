package booking

import (
	"context"
	"fmt"

	bookingRepo "tourbook/database/repository/booking"
	"tourbook/models"
	"tourbook/utils"
)

// Policy decides when two bookings on the same provider and date collide.
type Policy string

const (
	// PolicyExact collides bookings that share a start time.
	PolicyExact Policy = "exact"
	// PolicyOverlap collides bookings whose [start, end+buffer) intervals intersect.
	PolicyOverlap Policy = "overlap"
)

// ParsePolicy maps a config value to a Policy, defaulting to PolicyExact.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyExact:
		return PolicyExact, nil
	case PolicyOverlap:
		return PolicyOverlap, nil
	default:
		return PolicyExact, fmt.Errorf("unknown conflict policy %q", s)
	}
}

// ConflictChecker applies one Policy to every booking write and availability query.
type ConflictChecker struct {
	Repo   bookingRepo.BookingRepository
	Policy Policy
}

func NewConflictChecker(repo bookingRepo.BookingRepository, policy Policy) *ConflictChecker {
	return &ConflictChecker{Repo: repo, Policy: policy}
}

// Collides reports whether candidate and existing occupy the same slot.
// Cancelled bookings never collide. bufferMinutes only applies to PolicyOverlap.
func (cc *ConflictChecker) Collides(candidate, existing models.Booking, bufferMinutes int) bool {
	if !existing.Active() || candidate.ProviderID != existing.ProviderID || candidate.Date != existing.Date {
		return false
	}
	if candidate.ID != "" && candidate.ID == existing.ID {
		return false
	}
	if cc.Policy != PolicyOverlap {
		return candidate.StartTime == existing.StartTime
	}

	aStart, errA := models.ParseClock(candidate.StartTime)
	bStart, errB := models.ParseClock(existing.StartTime)
	if errA != nil || errB != nil {
		return candidate.StartTime == existing.StartTime
	}
	if bufferMinutes < 0 {
		bufferMinutes = 0
	}
	aEnd := aStart + candidate.Duration + bufferMinutes
	bEnd := bStart + existing.Duration + bufferMinutes
	return aStart < bEnd && bStart < aEnd
}

// Check looks up the provider's active bookings on the candidate's date and
// reports whether any collides. A failed lookup is returned as an error so
// callers reject the write.
func (cc *ConflictChecker) Check(ctx context.Context, candidate models.Booking, bufferMinutes int) (bool, error) {
	if candidate.ProviderID == "" || candidate.Date == "" || candidate.StartTime == "" {
		return false, utils.ValidationError{Message: MsgMissingFields}
	}
	existing, err := cc.Repo.ListActiveOnDate(ctx, candidate.ProviderID, candidate.Date)
	if err != nil {
		return false, fmt.Errorf("conflict lookup failed: %w", err)
	}
	for _, e := range existing {
		if cc.Collides(candidate, e, bufferMinutes) {
			return true, nil
		}
	}
	return false, nil
}
