package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tourbook/services/user"
	"tourbook/utils"

	"firebase.google.com/go/v4/auth"
)

// DefaultIdentityToolkitURL is the REST base used for password sign-in and reset mail.
const DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider delegates identity to Firebase Authentication. The Admin SDK
// can neither sign in with a password nor send the reset mail, so those calls
// go through the Identity Toolkit REST API with the project's web API key.
type FirebaseProvider struct {
	Auth       *auth.Client
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewFirebaseProvider(client *auth.Client, apiKey string) *FirebaseProvider {
	return &FirebaseProvider{
		Auth:       client,
		APIKey:     apiKey,
		BaseURL:    DefaultIdentityToolkitURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	IDToken   string `json:"idToken"`
	Email     string `json:"email"`
	LocalID   string `json:"localId"`
	ExpiresIn string `json:"expiresIn"`
}

type toolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, utils.ValidationError{Message: "Email and password are required"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.ValidationError{Message: "Password must be at least 6 characters"}
	}

	params := (&auth.UserToCreate{}).Email(email).Password(req.Password)
	if name := strings.TrimSpace(req.Name); name != "" {
		params = params.DisplayName(name)
	}
	if _, err := p.Auth.CreateUser(ctx, params); err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, utils.ConflictError{Message: "An account with this email already exists"}
		}
		return nil, utils.NewBackendError("Failed to create account", err)
	}
	return p.SignIn(ctx, email, req.Password)
}

type oobCodeRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

// callToolkit POSTs in to the accounts:<method> endpoint. A non-200 answer is
// returned as its status code and decoded error body.
func (p *FirebaseProvider) callToolkit(ctx context.Context, method string, in, out interface{}) (int, *toolkitError, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, nil, err
	}
	endpoint := fmt.Sprintf("%s/accounts:%s?key=%s", p.BaseURL, method, url.QueryEscape(p.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var tkErr toolkitError
		_ = json.NewDecoder(resp.Body).Decode(&tkErr)
		return resp.StatusCode, &tkErr, nil
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, nil, fmt.Errorf("decoding response failed: %w", err)
		}
	}
	return resp.StatusCode, nil, nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var out signInResponse
	in := signInRequest{Email: strings.TrimSpace(email), Password: password, ReturnSecureToken: true}
	status, tkErr, err := p.callToolkit(ctx, "signInWithPassword", in, &out)
	if err != nil {
		return nil, utils.NewBackendError("Failed to sign in", err)
	}
	if tkErr != nil {
		if status == http.StatusBadRequest {
			return nil, utils.UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, utils.NewBackendError("Failed to sign in",
			fmt.Errorf("identity toolkit returned %d: %s", status, tkErr.Error.Message))
	}
	expires, _ := strconv.ParseInt(out.ExpiresIn, 10, 64)
	return &Session{UserID: out.LocalID, Email: out.Email, Token: out.IDToken, ExpiresIn: expires}, nil
}

// SendPasswordReset has Firebase mail its reset link to email.
func (p *FirebaseProvider) SendPasswordReset(ctx context.Context, email string) error {
	in := oobCodeRequest{RequestType: "PASSWORD_RESET", Email: strings.TrimSpace(email)}
	status, tkErr, err := p.callToolkit(ctx, "sendOobCode", in, nil)
	if err != nil {
		return utils.NewBackendError("Failed to start password reset", err)
	}
	if tkErr == nil {
		return nil
	}
	if status == http.StatusBadRequest {
		switch {
		case strings.HasPrefix(tkErr.Error.Message, "EMAIL_NOT_FOUND"):
			// Do not reveal whether the account exists.
			return nil
		case strings.HasPrefix(tkErr.Error.Message, "INVALID_EMAIL"):
			return utils.ValidationError{Message: "Invalid email address"}
		}
	}
	return utils.NewBackendError("Failed to start password reset",
		fmt.Errorf("identity toolkit returned %d: %s", status, tkErr.Error.Message))
}

func (p *FirebaseProvider) Verify(ctx context.Context, token string) (*user.Identity, error) {
	tok, err := p.Auth.VerifyIDTokenAndCheckRevoked(ctx, token)
	if err != nil {
		return nil, utils.UnauthorizedError{Message: "Invalid token"}
	}
	id := &user.Identity{UID: tok.UID}
	if email, ok := tok.Claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		id.DisplayName = name
	}
	return id, nil
}

// SignOut revokes every refresh token of the user, which also invalidates
// outstanding ID tokens under the revocation check in Verify.
func (p *FirebaseProvider) SignOut(ctx context.Context, uid, _ string) error {
	if err := p.Auth.RevokeRefreshTokens(ctx, uid); err != nil {
		return utils.NewBackendError("Failed to sign out", err)
	}
	return nil
}
