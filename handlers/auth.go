package handlers

import (
	"net/http"
	"strings"

	"tourbook/middleware"
	"tourbook/models"
	"tourbook/services/identity"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves sign-up, sign-in and the caller's own profile.
type AuthHandler struct {
	Identity identity.Provider
	Users    user.UserService
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// authResponse pairs the session with the User document.
type authResponse struct {
	*identity.Session
	User *models.User `json:"user"`
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Role != "" && !models.ValidRole(req.Role) {
		respondError(c, utils.ValidationError{Message: "Role must be provider or client"})
		return
	}
	ctx := c.Request.Context()
	session, err := h.Identity.SignUp(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	u, err := h.Users.EnsureUser(ctx, user.Identity{
		UID:         session.UserID,
		Email:       session.Email,
		DisplayName: req.Name,
	}, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Account created", zap.String("userId", u.ID), zap.String("role", u.Role))
	c.JSON(http.StatusCreated, authResponse{Session: session, User: u})
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondError(c, utils.ValidationError{Message: "Email and password are required"})
		return
	}
	ctx := c.Request.Context()
	session, err := h.Identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	u, err := h.Users.EnsureUser(ctx, user.Identity{UID: session.UserID, Email: session.Email}, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{Session: session, User: u})
}

// ResetPassword handles POST /api/auth/reset-password. The response does not
// reveal whether the address has an account.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		respondError(c, utils.ValidationError{Message: "Email is required"})
		return
	}
	if err := h.Identity.SendPasswordReset(c.Request.Context(), email); err != nil {
		status, _ := utils.StatusFor(err)
		if status >= http.StatusInternalServerError {
			respondError(c, err)
			return
		}
		getLogger(c).Debug("Password reset for unknown account", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a password reset email has been sent"})
}

// SignOut handles POST /api/auth/signout.
func (h *AuthHandler) SignOut(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.Identity.SignOut(c.Request.Context(), u.ID, c.GetString(middleware.ContextToken)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateMe handles PATCH /api/auth/me.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req models.UserUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.UpdateUser(c.Request.Context(), middleware.CurrentUser(c).ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
