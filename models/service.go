package models

import "time"

// Service is a bookable offering of a provider, e.g. a guided tour option.
type Service struct {
	ID          string     `bson:"id" firestore:"id" json:"id"`
	ProviderID  string     `bson:"providerId" firestore:"providerId" json:"providerId"`
	Name        string     `bson:"name" firestore:"name" json:"name"`
	Description string     `bson:"description" firestore:"description" json:"description"`
	Duration    int        `bson:"duration" firestore:"duration" json:"duration"` // minutes
	Price       float64    `bson:"price" firestore:"price" json:"price"`
	Category    string     `bson:"category,omitempty" firestore:"category,omitempty" json:"category,omitempty"`
	IsActive    bool       `bson:"isActive" firestore:"isActive" json:"isActive"`
	CreatedAt   time.Time  `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
	UpdatedAt   *time.Time `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ServiceRequest is used both to create and to patch a service.
type ServiceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Duration    *int     `json:"duration"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}
