package middleware

import (
	"net/http"
	"strings"

	"tourbook/models"
	"tourbook/services/identity"
	"tourbook/services/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by Authenticate.
const (
	ContextUser   = "user"
	ContextUserID = "userID"
	ContextToken  = "token"
)

const msgUnauthorized = "Insufficient authorization"

// Authenticate verifies the bearer token with the identity backend and loads
// (or lazily creates) the matching User document.
func Authenticate(idp identity.Provider, users user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := requestLogger(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}

		id, err := idp.Verify(c.Request.Context(), token)
		if err != nil {
			status, message := utils.StatusFor(err)
			if status >= http.StatusInternalServerError {
				logger.Error("Token verification failed", zap.Error(err))
			} else {
				message = msgUnauthorized
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": message})
			return
		}

		u, err := users.EnsureUser(c.Request.Context(), *id, "")
		if err != nil {
			utils.RespondError(c, logger, err)
			c.Abort()
			return
		}

		c.Set(ContextUser, u)
		c.Set(ContextUserID, u.ID)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// requestLogger returns the logger stored by RequestLogger, or the global one.
func requestLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return utils.GetLogger()
}
