package routes

import (
	"github.com/gin-gonic/gin"

	"unipool/internal/handlers"
)

// SetupUserRoutes sets up routes for accounts, ratings and per-user history
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.POST("", userHandler.Register)
		users.GET("/:id", userHandler.GetUser)
		users.GET("/:id/bookings", userHandler.GetUserBookings)
		users.GET("/:id/rides", userHandler.GetDriverRides)
		users.GET("/:id/ratings", userHandler.GetUserRatings)
		users.POST("/:id/ratings", userHandler.SubmitRating)
	}
}
