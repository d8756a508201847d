package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"tourbook/database/repository/memory"
	"tourbook/utils"
)

type memoryRevocations map[string]bool

func (m memoryRevocations) Revoke(_ context.Context, tokenHash string, ttl time.Duration) error {
	if ttl > 0 {
		m[tokenHash] = true
	}
	return nil
}

func (m memoryRevocations) IsRevoked(_ context.Context, tokenHash string) (bool, error) {
	return m[tokenHash], nil
}

type brokenRevocations struct{}

func (brokenRevocations) Revoke(context.Context, string, time.Duration) error { return nil }

func (brokenRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newLocal() *LocalProvider {
	return &LocalProvider{Users: memory.NewUserRepo(), Revoked: memoryRevocations{}, TTL: time.Hour}
}

func TestLocalSignUpAndSignIn(t *testing.T) {
	p := newLocal()
	ctx := context.Background()

	session, err := p.SignUp(ctx, SignUpRequest{Email: " Farm@Example.com ", Password: "secret1", Role: "provider"})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if session.Email != "farm@example.com" || session.Token == "" {
		t.Fatalf("unexpected session %+v", session)
	}

	id, err := p.Verify(ctx, session.Token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id.UID != session.UserID || id.Email != "farm@example.com" {
		t.Fatalf("unexpected identity %+v", id)
	}

	if _, err := p.SignIn(ctx, "farm@example.com", "secret1"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	var unauthorized utils.UnauthorizedError
	if _, err := p.SignIn(ctx, "farm@example.com", "wrong"); !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError for a bad password, got %v", err)
	}
	if _, err := p.SignIn(ctx, "nobody@example.com", "secret1"); !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError for an unknown email, got %v", err)
	}
}

func TestLocalSignUpRules(t *testing.T) {
	p := newLocal()
	ctx := context.Background()

	var validation utils.ValidationError
	cases := []SignUpRequest{
		{Email: "", Password: "secret1"},
		{Email: "a@example.com", Password: "123"},
		{Email: "a@example.com", Password: "secret1", Role: "admin"},
	}
	for _, req := range cases {
		if _, err := p.SignUp(ctx, req); !errors.As(err, &validation) {
			t.Fatalf("SignUp(%+v): expected ValidationError, got %v", req, err)
		}
	}

	if _, err := p.SignUp(ctx, SignUpRequest{Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	var conflict utils.ConflictError
	if _, err := p.SignUp(ctx, SignUpRequest{Email: "A@example.com", Password: "secret1"}); !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError for a reused email, got %v", err)
	}
}

func TestLocalSignOutRevokesToken(t *testing.T) {
	p := newLocal()
	ctx := context.Background()
	session, err := p.SignUp(ctx, SignUpRequest{Email: "b@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if err := p.SignOut(ctx, session.UserID, session.Token); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	var unauthorized utils.UnauthorizedError
	if _, err := p.Verify(ctx, session.Token); !errors.As(err, &unauthorized) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestLocalVerifyFailsClosed(t *testing.T) {
	p := newLocal()
	ctx := context.Background()
	session, err := p.SignUp(ctx, SignUpRequest{Email: "c@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	p.Revoked = brokenRevocations{}
	var backend utils.BackendError
	if _, err := p.Verify(ctx, session.Token); !errors.As(err, &backend) {
		t.Fatalf("expected BackendError when revocations cannot be read, got %v", err)
	}
	if _, err := p.Verify(ctx, "not-a-token"); err == nil {
		t.Fatal("garbage token should be rejected")
	}
}
