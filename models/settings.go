package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WeeklyPattern is a provider's recurring opening schedule: the weekdays it is
// open and the start times offered on each open day.
type WeeklyPattern struct {
	OpenDays   []string `bson:"openDays" firestore:"openDays" json:"openDays"`
	DailySlots []string `bson:"dailySlots" firestore:"dailySlots" json:"dailySlots"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a case-insensitive English weekday name.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// DefaultWeeklyPattern is open Tuesday to Saturday with four tours a day.
func DefaultWeeklyPattern() WeeklyPattern {
	return WeeklyPattern{
		OpenDays:   []string{"tuesday", "wednesday", "thursday", "friday", "saturday"},
		DailySlots: []string{"09:00", "11:00", "13:00", "15:00"},
	}
}

// IsZero reports whether no pattern has been configured.
func (p WeeklyPattern) IsZero() bool {
	return len(p.OpenDays) == 0 && len(p.DailySlots) == 0
}

// Weekdays returns the open days as a lookup set.
func (p WeeklyPattern) Weekdays() (map[time.Weekday]bool, error) {
	open := make(map[time.Weekday]bool, len(p.OpenDays))
	for _, name := range p.OpenDays {
		wd, ok := ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		open[wd] = true
	}
	return open, nil
}

// Validate checks weekday names and requires slots to be unique, ascending HH:MM values.
func (p WeeklyPattern) Validate() error {
	if _, err := p.Weekdays(); err != nil {
		return err
	}
	prev := -1
	for _, s := range p.DailySlots {
		m, err := ParseClock(s)
		if err != nil {
			return err
		}
		if m <= prev {
			return fmt.Errorf("daily slots must be unique and in ascending order")
		}
		prev = m
	}
	return nil
}

// Normalized returns a copy with lower-cased weekday names in calendar order.
func (p WeeklyPattern) Normalized() WeeklyPattern {
	days := make([]string, 0, len(p.OpenDays))
	seen := make(map[string]bool)
	for _, d := range p.OpenDays {
		d = strings.ToLower(strings.TrimSpace(d))
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return weekdayNames[days[i]] < weekdayNames[days[j]] })
	slots := append([]string(nil), p.DailySlots...)
	return WeeklyPattern{OpenDays: days, DailySlots: slots}
}

// ProviderSettings holds per-provider booking policy.
type ProviderSettings struct {
	ID                   string        `bson:"id" firestore:"id" json:"id"`
	ProviderID           string        `bson:"providerId" firestore:"providerId" json:"providerId"`
	BufferTime           int           `bson:"bufferTime" firestore:"bufferTime" json:"bufferTime"`                            // minutes between bookings
	MaxAdvanceBooking    int           `bson:"maxAdvanceBooking" firestore:"maxAdvanceBooking" json:"maxAdvanceBooking"`       // days
	RequireConfirmation  bool          `bson:"requireConfirmation" firestore:"requireConfirmation" json:"requireConfirmation"` // new bookings start as pending
	AllowCancellation    bool          `bson:"allowCancellation" firestore:"allowCancellation" json:"allowCancellation"`
	CancellationDeadline int           `bson:"cancellationDeadline" firestore:"cancellationDeadline" json:"cancellationDeadline"` // hours before start
	EmailNotifications   bool          `bson:"emailNotifications" firestore:"emailNotifications" json:"emailNotifications"`
	SMSNotifications     bool          `bson:"smsNotifications" firestore:"smsNotifications" json:"smsNotifications"`
	PushNotifications    bool          `bson:"pushNotifications" firestore:"pushNotifications" json:"pushNotifications"`
	Availability         WeeklyPattern `bson:"availability" firestore:"availability" json:"availability"`
	CreatedAt            time.Time     `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
	UpdatedAt            *time.Time    `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// DefaultProviderSettings mirrors the values a provider gets at setup.
func DefaultProviderSettings(providerID string) ProviderSettings {
	return ProviderSettings{
		ProviderID:           providerID,
		BufferTime:           15,
		MaxAdvanceBooking:    30,
		RequireConfirmation:  true,
		AllowCancellation:    true,
		CancellationDeadline: 24,
		EmailNotifications:   true,
		SMSNotifications:     false,
		PushNotifications:    true,
		Availability:         DefaultWeeklyPattern(),
	}
}

// UnconfiguredProviderSettings is the policy of a provider that has no stored
// settings document. Setup always stores DefaultProviderSettings, so this only
// applies to providers known to the bookings resource alone: no buffer, no
// cancellation deadline, and the service-wide booking horizon.
func UnconfiguredProviderSettings(providerID string) ProviderSettings {
	return ProviderSettings{
		ID:                  providerID,
		ProviderID:          providerID,
		RequireConfirmation: true,
		AllowCancellation:   true,
		EmailNotifications:  true,
		PushNotifications:   true,
		Availability:        DefaultWeeklyPattern(),
	}
}

// SettingsRequest replaces the provider's policy knobs.
type SettingsRequest struct {
	BufferTime           int            `json:"bufferTime"`
	MaxAdvanceBooking    int            `json:"maxAdvanceBooking"`
	RequireConfirmation  bool           `json:"requireConfirmation"`
	AllowCancellation    bool           `json:"allowCancellation"`
	CancellationDeadline int            `json:"cancellationDeadline"`
	EmailNotifications   bool           `json:"emailNotifications"`
	SMSNotifications     bool           `json:"smsNotifications"`
	PushNotifications    bool           `json:"pushNotifications"`
	Availability         *WeeklyPattern `json:"availability"`
}
