package middleware

import (
	"context"
	"net/http"

	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// OwnershipChecker decides whether a user owns a provider profile.
type OwnershipChecker interface {
	IsOwner(ctx context.Context, providerID, userID string) (bool, error)
}

// RequireRole lets only users with one of roles through. Must run after Authenticate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied for role " + u.Role})
	}
}

// RequireProviderOwner restricts a /providers/:id route to the profile owner.
func RequireProviderOwner(checker OwnershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
			return
		}
		owner, err := checker.IsOwner(c.Request.Context(), c.Param("id"), u.ID)
		if err != nil {
			utils.RespondError(c, requestLogger(c), err)
			c.Abort()
			return
		}
		if !owner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not manage this provider"})
			return
		}
		c.Next()
	}
}
