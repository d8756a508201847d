package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"tourbook/database/repository"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LocalProvider authenticates against bcrypt hashes stored on the User
// document and issues HS256 tokens.
type LocalProvider struct {
	Users   userRepo.UserRepository
	Revoked RevocationStore
	TTL     time.Duration
}

func (p *LocalProvider) issue(u *models.User) (*Session, error) {
	token, err := utils.GenerateToken(u.ID, u.Email, u.Role, p.TTL)
	if err != nil {
		return nil, utils.NewBackendError("Failed to issue token", err)
	}
	return &Session{UserID: u.ID, Email: u.Email, Token: token, ExpiresIn: int64(p.TTL.Seconds())}, nil
}

func (p *LocalProvider) SignUp(ctx context.Context, req SignUpRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, utils.ValidationError{Message: "Email and password are required"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, utils.ValidationError{Message: "Password must be at least 6 characters"}
	}
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if !models.ValidRole(role) {
		return nil, utils.ValidationError{Message: "Role must be provider or client"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewBackendError("Failed to create account", err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, utils.ConflictError{Message: "An account with this email already exists"}
		}
		return nil, utils.NewBackendError("Failed to create account", err)
	}
	return p.issue(u)
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := p.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.UnauthorizedError{Message: "Invalid email or password"}
		}
		return nil, utils.NewBackendError("Failed to sign in", err)
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, utils.UnauthorizedError{Message: "Invalid email or password"}
	}
	return p.issue(u)
}

func (p *LocalProvider) Verify(ctx context.Context, token string) (*user.Identity, error) {
	claims, err := utils.ExtractClaims(token)
	if err != nil {
		return nil, utils.UnauthorizedError{Message: "Invalid token"}
	}
	if p.Revoked != nil {
		revoked, err := p.Revoked.IsRevoked(ctx, utils.HashToken(token))
		if err != nil {
			// Fail closed: a token that cannot be checked is not accepted.
			return nil, utils.NewBackendError("Failed to verify token", err)
		}
		if revoked {
			return nil, utils.UnauthorizedError{Message: "Token has been revoked"}
		}
	}
	return &user.Identity{UID: claims.Subject, Email: claims.Email}, nil
}

func (p *LocalProvider) SignOut(ctx context.Context, uid, token string) error {
	if p.Revoked == nil {
		return nil
	}
	if err := p.Revoked.Revoke(ctx, utils.HashToken(token), utils.TokenExpiry(token)); err != nil {
		return utils.NewBackendError("Failed to sign out", err)
	}
	return nil
}

// SendPasswordReset has no mail transport locally; it only records the request.
func (p *LocalProvider) SendPasswordReset(ctx context.Context, email string) error {
	utils.GetLogger().Info("Password reset requested for local account", zap.String("email", email))
	return nil
}
