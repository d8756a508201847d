package models

import "time"

// Provider is a business profile owned by exactly one user.
type Provider struct {
	ID           string     `bson:"id" firestore:"id" json:"id"`
	UserID       string     `bson:"userId" firestore:"userId" json:"userId"`
	BusinessName string     `bson:"businessName" firestore:"businessName" json:"businessName"`
	Description  string     `bson:"description" firestore:"description" json:"description"`
	Location     string     `bson:"location" firestore:"location" json:"location"`
	Phone        string     `bson:"phone" firestore:"phone" json:"phone"`
	Website      string     `bson:"website,omitempty" firestore:"website,omitempty" json:"website,omitempty"`
	Rating       float64    `bson:"rating" firestore:"rating" json:"rating"`
	ReviewCount  int        `bson:"reviewCount" firestore:"reviewCount" json:"reviewCount"`
	IsActive     bool       `bson:"isActive" firestore:"isActive" json:"isActive"`
	CreatedAt    time.Time  `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ProviderSetupRequest is the payload used to create a provider profile.
type ProviderSetupRequest struct {
	BusinessName string `json:"businessName"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Phone        string `json:"phone"`
	Website      string `json:"website"`
}

// ProviderUpdateRequest holds the editable provider fields.
type ProviderUpdateRequest struct {
	BusinessName *string `json:"businessName"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	Phone        *string `json:"phone"`
	Website      *string `json:"website"`
	IsActive     *bool   `json:"isActive"`
}

// DashboardStats summarises a provider's bookings for the dashboard.
type DashboardStats struct {
	TodayBookings     int       `json:"todayBookings"`
	PendingBookings   int       `json:"pendingBookings"`
	ConfirmedBookings int       `json:"confirmedBookings"`
	TotalRevenue      float64   `json:"totalRevenue"`
	RecentBookings    []Booking `json:"recentBookings"`
}
