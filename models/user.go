package models

import "time"

// Roles a user can hold.
const (
	RoleProvider = "provider"
	RoleClient   = "client"
)

// User is the application profile linked to an identity from the auth backend.
type User struct {
	ID           string     `bson:"id" firestore:"id" json:"id"`
	Email        string     `bson:"email" firestore:"email" json:"email"`
	Name         string     `bson:"name" firestore:"name" json:"name"`
	Role         string     `bson:"role" firestore:"role" json:"role"`
	Phone        string     `bson:"phone,omitempty" firestore:"phone,omitempty" json:"phone,omitempty"`
	FCMToken     string     `bson:"fcmToken,omitempty" firestore:"fcmToken,omitempty" json:"-"`
	PasswordHash string     `bson:"passwordHash,omitempty" firestore:"passwordHash,omitempty" json:"-"`
	CreatedAt    time.Time  `bson:"createdAt" firestore:"createdAt" json:"createdAt"`
	UpdatedAt    *time.Time `bson:"updatedAt,omitempty" firestore:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ValidRole reports whether role is one of the supported roles.
func ValidRole(role string) bool {
	return role == RoleProvider || role == RoleClient
}

// UserUpdateRequest carries the editable profile fields.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	FCMToken *string `json:"fcmToken"`
}
