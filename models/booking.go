package models

import "time"

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no-show"
)

// BookingStatuses lists every valid status value.
var BookingStatuses = []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Booking is a client's reservation of a provider slot.
type Booking struct {
	ID          string     `bson:"id" firestore:"id" json:"id"`
	ProviderID  string     `bson:"providerId" firestore:"providerId" json:"providerId"`
	ClientName  string     `bson:"clientName" firestore:"clientName" json:"clientName"`
	ClientEmail string     `bson:"clientEmail" firestore:"clientEmail" json:"clientEmail"`
	ClientPhone string     `bson:"clientPhone" firestore:"clientPhone" json:"clientPhone"`
	ServiceID   string     `bson:"serviceId,omitempty" firestore:"serviceId,omitempty" json:"serviceId,omitempty"`
	ServiceName string     `bson:"serviceName" firestore:"serviceName" json:"serviceName"`
	Date        string     `bson:"date" firestore:"date" json:"date"`                // YYYY-MM-DD
	StartTime   string     `bson:"startTime" firestore:"startTime" json:"startTime"` // HH:MM
	EndTime     string     `bson:"endTime" firestore:"endTime" json:"endTime"`       // HH:MM
	Duration    int        `bson:"duration" firestore:"duration" json:"duration"`    // minutes
	PartySize   int        `bson:"partySize,omitempty" firestore:"partySize,omitempty" json:"partySize,omitempty"`
	Price       float64    `bson:"price" firestore:"price" json:"price"`
	Status      string     `bson:"status" firestore:"status" json:"status"`
	Notes       string     `bson:"notes" firestore:"notes" json:"notes"`
	CreatedAt   time.Time  `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
	Version     int        `bson:"version" firestore:"version" json:"-"`

	// SlotKey is set while the booking holds its slot and cleared once cancelled.
	SlotKey string `bson:"slotKey,omitempty" firestore:"slotKey,omitempty" json:"-"`
}

// Active reports whether the booking still occupies its slot.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}

// ActiveSlotKey is the uniqueness key of the occupied slot, or "" when cancelled.
func (b Booking) ActiveSlotKey() string {
	if !b.Active() {
		return ""
	}
	return b.ProviderID + "|" + b.Date + "|" + b.StartTime
}

// BookingRequest is the creation payload accepted by the bookings API.
type BookingRequest struct {
	ProviderID  string   `json:"providerId"`
	ClientName  string   `json:"clientName"`
	ClientEmail string   `json:"clientEmail"`
	ClientPhone string   `json:"clientPhone"`
	Service     string   `json:"service"`
	ServiceName string   `json:"serviceName"`
	ServiceID   string   `json:"serviceId"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	StartTime   string   `json:"startTime"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	PartySize   int      `json:"partySize"`
	Notes       string   `json:"notes"`
}

// BookingPatch holds the fields an update may change. Nil fields are left untouched.
type BookingPatch struct {
	ClientName  *string  `json:"clientName"`
	ClientEmail *string  `json:"clientEmail"`
	ClientPhone *string  `json:"clientPhone"`
	ServiceID   *string  `json:"serviceId"`
	ServiceName *string  `json:"serviceName"`
	Service     *string  `json:"service"`
	Date        *string  `json:"date"`
	StartTime   *string  `json:"startTime"`
	Time        *string  `json:"time"`
	Duration    *int     `json:"duration"`
	PartySize   *int     `json:"partySize"`
	Price       *float64 `json:"price"`
	Status      *string  `json:"status"`
	Notes       *string  `json:"notes"`
}
