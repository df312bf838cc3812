package routes

import (
	"github.com/gin-gonic/gin"

	"unipool/internal/handlers"
)

// SetupRideRoutes sets up routes for ride search, creation and booking
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler) {
	rides := r.Group("/rides")
	{
		rides.GET("", rideHandler.SearchRides)
		rides.POST("", rideHandler.CreateRide)
		rides.POST("/cleanup", rideHandler.CleanupRides)
		rides.GET("/:id", rideHandler.GetRide)

		// Seat booking on a ride
		rides.POST("/:id/bookings", rideHandler.BookRide)
		rides.DELETE("/:id/bookings/:rider_id", rideHandler.CancelBooking)
	}
}
