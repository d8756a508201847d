package handlers

import (
	"net/http"

	"tourbook/middleware"
	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/services/provider"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler serves provider profiles and their owner-managed resources.
type ProviderHandler struct {
	Service  provider.ProviderService
	Bookings booking.BookingService
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		respondError(c, utils.ValidationError{Message: "Invalid request body"})
		return false
	}
	return true
}

// ListProviders handles GET /api/providers.
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	providers, err := h.Service.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	c.JSON(http.StatusOK, providers)
}

// SetupProvider handles POST /api/providers.
func (h *ProviderHandler) SetupProvider(c *gin.Context) {
	var req models.ProviderSetupRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.Setup(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProvider handles GET /api/providers/:id.
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	p, err := h.Service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GetMyProvider handles GET /api/providers/me.
func (h *ProviderHandler) GetMyProvider(c *gin.Context) {
	u := middleware.CurrentUser(c)
	p, err := h.Service.GetProviderForUser(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProvider handles PATCH /api/providers/:id.
func (h *ProviderHandler) UpdateProvider(c *gin.Context) {
	var req models.ProviderUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.UpdateProvider(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListServices handles GET /api/providers/:id/services. Inactive services are
// only listed on the owner route.
func (h *ProviderHandler) ListServices(c *gin.Context) {
	h.listServices(c, false)
}

// ListAllServices handles GET /api/providers/:id/services/all for the owner.
func (h *ProviderHandler) ListAllServices(c *gin.Context) {
	h.listServices(c, true)
}

func (h *ProviderHandler) listServices(c *gin.Context, includeInactive bool) {
	services, err := h.Service.ListServices(c.Request.Context(), c.Param("id"), includeInactive)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// CreateService handles POST /api/providers/:id/services.
func (h *ProviderHandler) CreateService(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Service.CreateService(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// UpdateService handles PATCH /api/providers/:id/services/:serviceId.
func (h *ProviderHandler) UpdateService(c *gin.Context) {
	var req models.ServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Service.UpdateService(c.Request.Context(), c.Param("id"), c.Param("serviceId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService handles DELETE /api/providers/:id/services/:serviceId by deactivating it.
func (h *ProviderHandler) DeleteService(c *gin.Context) {
	svc, err := h.Service.DeactivateService(c.Request.Context(), c.Param("id"), c.Param("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deactivated", "service": svc})
}

// GetSettings handles GET /api/providers/:id/settings.
func (h *ProviderHandler) GetSettings(c *gin.Context) {
	s, err := h.Service.GetSettings(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ReplaceSettings handles PUT /api/providers/:id/settings.
func (h *ProviderHandler) ReplaceSettings(c *gin.Context) {
	var req models.SettingsRequest
	if !bindJSON(c, &req) {
		return
	}
	s, err := h.Service.ReplaceSettings(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListProviderBookings handles GET /api/providers/:id/bookings. A failing
// store yields an empty list.
func (h *ProviderHandler) ListProviderBookings(c *gin.Context) {
	bookings := h.Bookings.ListByProvider(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, bookingViews(bookings))
}

// Dashboard handles GET /api/providers/:id/dashboard.
func (h *ProviderHandler) Dashboard(c *gin.Context) {
	stats, err := h.Service.Dashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"todayBookings":     stats.TodayBookings,
		"pendingBookings":   stats.PendingBookings,
		"confirmedBookings": stats.ConfirmedBookings,
		"totalRevenue":      stats.TotalRevenue,
		"recentBookings":    bookingViews(stats.RecentBookings),
	})
}

// ListReviews handles GET /api/providers/:id/reviews.
func (h *ProviderHandler) ListReviews(c *gin.Context) {
	summary, err := h.Service.ListReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateReview handles POST /api/providers/:id/reviews.
func (h *ProviderHandler) CreateReview(c *gin.Context) {
	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review, err := h.Service.CreateReview(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
