package handlers

import (
	"net/http"

	bookingRepo "tourbook/database/repository/booking"
	"tourbook/middleware"
	"tourbook/models"
	"tourbook/services/booking"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the generic bookings resource.
type BookingHandler struct {
	Service booking.BookingService
}

// BookingView is the wire form of a booking. Service and Time repeat
// ServiceName and StartTime for clients that use the short names.
type BookingView struct {
	models.Booking
	Service string `json:"service"`
	Time    string `json:"time"`
}

func bookingView(b models.Booking) BookingView {
	return BookingView{Booking: b, Service: b.ServiceName, Time: b.StartTime}
}

func bookingViews(bookings []models.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, bookingView(b))
	}
	return views
}

// ListBookings handles GET /api/bookings?providerId=&status=&date=.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := bookingRepo.Filter{
		ProviderID: c.Query("providerId"),
		Status:     c.Query("status"),
		Date:       c.Query("date"),
	}
	bookings, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingViews(bookings))
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Invalid booking request body", zap.Error(err))
		respondError(c, utils.ValidationError{Message: booking.MsgMissingFields})
		return
	}
	created, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingView(*created))
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(*b))
}

// UpdateBooking handles PATCH /api/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var patch models.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, utils.ValidationError{Message: "Invalid request body"})
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(*updated))
}

// DeleteBooking handles DELETE /api/bookings/:id and returns the removed record.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	removed, err := h.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": booking.MsgCancelled, "booking": bookingView(*removed)})
}

// CancelBooking handles POST /api/bookings/:id/cancel for an authenticated caller.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	cancelled, err := h.Service.Cancel(c.Request.Context(), c.Param("id"), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(*cancelled))
}
