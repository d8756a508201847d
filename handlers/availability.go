package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"tourbook/services/availability"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityService computes a provider's bookable calendar.
type AvailabilityService interface {
	ForProvider(ctx context.Context, providerID string, q availability.Query) (availability.Calendar, error)
}

type AvailabilityHandler struct {
	Service AvailabilityService
}

// GetAvailability handles GET /api/providers/:id/availability?duration=&serviceId=.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	q := availability.Query{ServiceID: strings.TrimSpace(c.Query("serviceId"))}
	if raw := strings.TrimSpace(c.Query("duration")); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			respondError(c, utils.ValidationError{Message: "Duration must be a positive number of minutes"})
			return
		}
		q.Duration = d
	}
	cal, err := h.Service.ForProvider(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}
