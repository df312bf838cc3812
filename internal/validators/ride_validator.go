package validators

import (
	"time"

	"unipool/internal/models"
	"unipool/internal/services"
)

type RecurrenceRequest struct {
	Enabled bool     `json:"enabled"`
	Days    []string `json:"days" validate:"omitempty,max=7,dive,weekday_abbrev"`
}

type CreateRideRequest struct {
	Pickup        string             `json:"pickup" validate:"required,min=1,max=255"`
	Dropoff       string             `json:"dropoff" validate:"required,min=1,max=255"`
	DepartureTime string             `json:"departureTime" validate:"required,rfc3339"`
	DriverID      string             `json:"driverId" validate:"required"`
	Seats         int                `json:"seats" validate:"required,min=1,max=8"`
	Recurring     *RecurrenceRequest `json:"recurring"`
}

type BookRideRequest struct {
	RiderID     string `json:"riderId" validate:"required"`
	PickupPoint string `json:"pickupPoint" validate:"omitempty,max=255"`
}

func ValidateCreateRideRequest(req *CreateRideRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateBookRideRequest(req *BookRideRequest) ValidationErrors {
	return ValidateStruct(req)
}

// ToRideSpec converts a validated request into the service-level spec. The
// departure time is already known to parse.
func (req *CreateRideRequest) ToRideSpec() services.RideSpec {
	departure, _ := time.Parse(time.RFC3339, req.DepartureTime)

	spec := services.RideSpec{
		Pickup:        req.Pickup,
		Dropoff:       req.Dropoff,
		DepartureTime: departure,
		DriverID:      req.DriverID,
		Seats:         req.Seats,
	}
	if req.Recurring != nil {
		spec.Recurring = &models.Recurrence{
			Enabled: req.Recurring.Enabled,
			Days:    req.Recurring.Days,
		}
	}
	return spec
}
