package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"unipool/internal/services"
	"unipool/internal/utils"
	"unipool/internal/validators"
)

type RideHandler struct {
	bookingService *services.BookingService
	searchService  *services.SearchService
}

func NewRideHandler(bookingService *services.BookingService, searchService *services.SearchService) *RideHandler {
	return &RideHandler{
		bookingService: bookingService,
		searchService:  searchService,
	}
}

// CreateRide posts a new ride, expanding recurring definitions into dated
// instances.
func (h *RideHandler) CreateRide(c *gin.Context) {
	var request validators.CreateRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateRideRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	ride, err := h.bookingService.CreateRide(request.ToRideSpec())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Ride created successfully", ride)
}

// SearchRides filters rides by pickup substring, exact dropoff, departure
// window and id. No filters returns everything, sorted by departure.
func (h *RideHandler) SearchRides(c *gin.Context) {
	filters := services.RideFilters{
		Pickup:  c.Query("pickup"),
		Dropoff: c.Query("dropoff"),
		ID:      c.Query("id"),
	}

	if raw := c.Query("time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid time filter: "+err.Error())
			return
		}
		filters.Time = &t
	}

	rides := h.searchService.SearchRides(filters)
	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", rides, &utils.Meta{Count: len(rides)})
}

// GetRide fetches one ride by id.
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.searchService.GetRideByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Ride retrieved successfully", ride)
}

// BookRide reserves a seat on the ride for the requesting rider.
func (h *RideHandler) BookRide(c *gin.Context) {
	var request validators.BookRideRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateBookRideRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	booking, err := h.bookingService.BookRide(c.Param("id"), request.RiderID, request.PickupPoint)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Seat booked successfully", booking)
}

// CancelBooking releases the rider's seat on the ride.
func (h *RideHandler) CancelBooking(c *gin.Context) {
	if err := h.bookingService.CancelBooking(c.Param("id"), c.Param("rider_id")); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled successfully", nil)
}

// CleanupRides removes rides that departed more than a day ago.
func (h *RideHandler) CleanupRides(c *gin.Context) {
	removed, err := h.bookingService.CleanupOldRides()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Stale rides removed", nil, &utils.Meta{Count: removed})
}
