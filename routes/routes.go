package routes

import (
	"time"

	"tourbook/handlers"
	"tourbook/middleware"
	"tourbook/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-up, sign-in and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.Auth.SignUp)
		api.POST("/signin", hb.Auth.SignIn)
		api.POST("/reset-password", hb.Auth.ResetPassword)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.Authenticate(hb.Identity, hb.Users))
		protected.POST("/signout", hb.Auth.SignOut)
		protected.GET("/me", hb.Auth.Me)
		protected.PATCH("/me", hb.Auth.UpdateMe)
		protected.GET("/me/provider", middleware.RequireRole(models.RoleProvider), hb.Provider.GetMyProvider)
	}
}

// RegisterBookingRoutes registers the generic bookings resource.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.GET("", hb.Booking.ListBookings)
		api.POST("", hb.Booking.CreateBooking)
		api.GET("/:id", hb.Booking.GetBooking)
		api.PATCH("/:id", hb.Booking.UpdateBooking)
		api.DELETE("/:id", hb.Booking.DeleteBooking)
		api.POST("/:id/cancel", middleware.Authenticate(hb.Identity, hb.Users), hb.Booking.CancelBooking)
	}
}

// RegisterProviderRoutes registers provider profiles and their sub-resources.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := middleware.Authenticate(hb.Identity, hb.Users)
	owner := middleware.RequireProviderOwner(hb.Providers)

	api := r.Group("/api/providers")
	{
		// Public provider endpoints
		api.GET("", hb.Provider.ListProviders)
		api.GET("/:id", hb.Provider.GetProvider)
		api.GET("/:id/services", hb.Provider.ListServices)
		api.GET("/:id/availability", hb.Availability.GetAvailability)
		api.GET("/:id/reviews", hb.Provider.ListReviews)

		// Any signed-in user
		api.POST("", auth, middleware.RequireRole(models.RoleProvider), hb.Provider.SetupProvider)
		api.POST("/:id/reviews", auth, hb.Provider.CreateReview)

		// Profile owner only
		managed := api.Group("/:id")
		managed.Use(auth, owner)
		managed.PATCH("", hb.Provider.UpdateProvider)
		managed.GET("/services/all", hb.Provider.ListAllServices)
		managed.POST("/services", hb.Provider.CreateService)
		managed.PATCH("/services/:serviceId", hb.Provider.UpdateService)
		managed.DELETE("/services/:serviceId", hb.Provider.DeleteService)
		managed.GET("/settings", hb.Provider.GetSettings)
		managed.PUT("/settings", hb.Provider.ReplaceSettings)
		managed.GET("/bookings", hb.Provider.ListProviderBookings)
		managed.GET("/dashboard", hb.Provider.Dashboard)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and CORS.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterHealthRoute(r)
}
