// Package identity verifies callers and manages their credentials against the
// configured auth backend.
package identity

import (
	"context"
	"time"

	"tourbook/services/user"
)

// SignUpRequest is the payload of a new account.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Session is returned after a successful sign-in.
type Session struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"` // seconds
}

// Provider is an identity backend.
type Provider interface {
	SignUp(ctx context.Context, req SignUpRequest) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// Verify checks a bearer token and returns the identity it belongs to.
	Verify(ctx context.Context, token string) (*user.Identity, error)
	// SignOut invalidates the caller's sessions.
	SignOut(ctx context.Context, uid, token string) error
	// SendPasswordReset mails a password reset link. Unknown addresses are not an error.
	SendPasswordReset(ctx context.Context, email string) error
}

// RevocationStore remembers signed-out tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}

const minPasswordLength = 6
