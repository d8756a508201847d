package models

import "time"

// Review is display data left by a client for a provider.
type Review struct {
	ID          string    `bson:"id" firestore:"id" json:"id"`
	BookingID   string    `bson:"bookingId,omitempty" firestore:"bookingId,omitempty" json:"bookingId,omitempty"`
	ProviderID  string    `bson:"providerId" firestore:"providerId" json:"providerId"`
	ClientName  string    `bson:"clientName" firestore:"clientName" json:"clientName"`
	ClientEmail string    `bson:"clientEmail" firestore:"clientEmail" json:"clientEmail"`
	Rating      int       `bson:"rating" firestore:"rating" json:"rating"`
	Comment     string    `bson:"comment,omitempty" firestore:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
}

// ReviewSummary is a provider's review list with its average rating.
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"averageRating"`
	Count         int      `json:"count"`
}

// ReviewRequest is the payload of a new review. Client name and email come
// from the authenticated user.
type ReviewRequest struct {
	BookingID string `json:"bookingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
