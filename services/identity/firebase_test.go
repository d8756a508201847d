package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourbook/utils"
)

type toolkitCall struct {
	path string
	key  string
	body map[string]interface{}
}

// newToolkitServer answers every call with status and response and records
// what it received.
func newToolkitServer(t *testing.T, status int, response string) (*FirebaseProvider, *[]toolkitCall) {
	t.Helper()
	calls := &[]toolkitCall{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		*calls = append(*calls, toolkitCall{path: r.URL.Path, key: r.URL.Query().Get("key"), body: body})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	p := &FirebaseProvider{APIKey: "web-key", BaseURL: srv.URL, HTTPClient: srv.Client()}
	return p, calls
}

func TestFirebaseSendPasswordReset(t *testing.T) {
	p, calls := newToolkitServer(t, http.StatusOK, `{"email":"ona@example.com"}`)
	if err := p.SendPasswordReset(context.Background(), " ona@example.com "); err != nil {
		t.Fatalf("SendPasswordReset failed: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("expected one call, got %d", len(*calls))
	}
	call := (*calls)[0]
	if call.path != "/accounts:sendOobCode" || call.key != "web-key" {
		t.Fatalf("unexpected endpoint %s key=%s", call.path, call.key)
	}
	if call.body["requestType"] != "PASSWORD_RESET" || call.body["email"] != "ona@example.com" {
		t.Fatalf("unexpected body %v", call.body)
	}
}

func TestFirebaseSendPasswordResetUnknownEmail(t *testing.T) {
	p, _ := newToolkitServer(t, http.StatusBadRequest, `{"error":{"code":400,"message":"EMAIL_NOT_FOUND"}}`)
	if err := p.SendPasswordReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("unknown address should not be reported, got %v", err)
	}
}

func TestFirebaseSendPasswordResetServerError(t *testing.T) {
	p, _ := newToolkitServer(t, http.StatusInternalServerError, `{"error":{"code":500,"message":"INTERNAL"}}`)
	var backend utils.BackendError
	if err := p.SendPasswordReset(context.Background(), "ona@example.com"); !errors.As(err, &backend) {
		t.Fatalf("expected BackendError, got %v", err)
	}
}

func TestFirebaseSignIn(t *testing.T) {
	p, calls := newToolkitServer(t, http.StatusOK,
		`{"idToken":"id-token","email":"ona@example.com","localId":"uid-1","expiresIn":"3600"}`)
	session, err := p.SignIn(context.Background(), "ona@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if session.UserID != "uid-1" || session.Token != "id-token" || session.ExpiresIn != 3600 {
		t.Fatalf("unexpected session %+v", session)
	}
	call := (*calls)[0]
	if call.path != "/accounts:signInWithPassword" || call.body["returnSecureToken"] != true {
		t.Fatalf("unexpected call %+v", call)
	}
}

func TestFirebaseSignInBadCredentials(t *testing.T) {
	p, _ := newToolkitServer(t, http.StatusBadRequest, `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`)
	var unauthorized utils.UnauthorizedError
	if _, err := p.SignIn(context.Background(), "ona@example.com", "wrong"); !errors.As(err, &unauthorized) {
		t.Fatalf("expected UnauthorizedError, got %v", err)
	}
}

func TestFirebaseSignInServerError(t *testing.T) {
	p, _ := newToolkitServer(t, http.StatusServiceUnavailable, `{"error":{"code":503,"message":"UNAVAILABLE"}}`)
	var backend utils.BackendError
	if _, err := p.SignIn(context.Background(), "ona@example.com", "secret1"); !errors.As(err, &backend) {
		t.Fatalf("expected BackendError, got %v", err)
	}
}
