package models

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID          string        `json:"id"`
	RideID      string        `json:"rideId"`
	RiderID     string        `json:"riderId"`
	DriverID    string        `json:"driverId"`
	Status      BookingStatus `json:"status"`
	PickupPoint string        `json:"pickupPoint"`
	BookingTime time.Time     `json:"bookingTime"`
	CancelledAt *time.Time    `json:"cancelledAt,omitempty"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}
