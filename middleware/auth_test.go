package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourbook/database/repository/memory"
	"tourbook/services/identity"
	"tourbook/services/user"

	"github.com/gin-gonic/gin"
)

type ownerTable map[string]string

func (o ownerTable) IsOwner(_ context.Context, providerID, userID string) (bool, error) {
	return o[providerID] == userID, nil
}

type failingOwners struct{}

func (failingOwners) IsOwner(context.Context, string, string) (bool, error) {
	return false, errors.New("store offline")
}

type authFixture struct {
	router *gin.Engine
	local  *identity.LocalProvider
}

func newAuthFixture(t *testing.T, checker OwnershipChecker) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := memory.NewUserRepo()
	local := &identity.LocalProvider{Users: users, TTL: time.Hour}
	auth := Authenticate(local, user.NewDefaultUserService(users))

	r := gin.New()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"userId": CurrentUser(c).ID}) }
	r.GET("/me", auth, ok)
	r.POST("/providers", auth, RequireRole("provider"), ok)
	r.GET("/providers/:id/settings", auth, RequireProviderOwner(checker), ok)
	return &authFixture{router: r, local: local}
}

func (f *authFixture) token(t *testing.T, email, role string) (string, string) {
	t.Helper()
	s, err := f.local.SignUp(context.Background(), identity.SignUpRequest{Email: email, Password: "secret1", Role: role})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	return s.Token, s.UserID
}

func (f *authFixture) do(method, path, token string) int {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w.Code
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t, ownerTable{})
	token, _ := f.token(t, "ona@example.com", "client")

	if code := f.do(http.MethodGet, "/me", ""); code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", code)
	}
	if code := f.do(http.MethodGet, "/me", "garbage"); code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", code)
	}
	if code := f.do(http.MethodGet, "/me", token); code != http.StatusOK {
		t.Fatalf("valid token: expected 200, got %d", code)
	}
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture(t, ownerTable{})
	clientToken, _ := f.token(t, "ona@example.com", "client")
	providerToken, _ := f.token(t, "farm@example.com", "provider")

	if code := f.do(http.MethodPost, "/providers", clientToken); code != http.StatusForbidden {
		t.Fatalf("client: expected 403, got %d", code)
	}
	if code := f.do(http.MethodPost, "/providers", providerToken); code != http.StatusOK {
		t.Fatalf("provider: expected 200, got %d", code)
	}
}

func TestRequireProviderOwner(t *testing.T) {
	owners := ownerTable{}
	f := newAuthFixture(t, owners)
	ownerToken, ownerID := f.token(t, "farm@example.com", "provider")
	otherToken, _ := f.token(t, "other@example.com", "provider")
	owners["1"] = ownerID

	if code := f.do(http.MethodGet, "/providers/1/settings", ownerToken); code != http.StatusOK {
		t.Fatalf("owner: expected 200, got %d", code)
	}
	if code := f.do(http.MethodGet, "/providers/1/settings", otherToken); code != http.StatusForbidden {
		t.Fatalf("other provider: expected 403, got %d", code)
	}
}

func TestRequireProviderOwnerStoreFailure(t *testing.T) {
	f := newAuthFixture(t, failingOwners{})
	token, _ := f.token(t, "farm@example.com", "provider")
	if code := f.do(http.MethodGet, "/providers/1/settings", token); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when ownership cannot be checked, got %d", code)
	}
}
