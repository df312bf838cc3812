package models

import "time"

// Recurrence selects the weekdays a ride definition repeats on. Days use
// three-letter abbreviations ("Mon" .. "Sun").
type Recurrence struct {
	Enabled bool     `json:"enabled"`
	Days    []string `json:"days"`
}

type Ride struct {
	ID             string      `json:"id"`
	Pickup         string      `json:"pickup"`
	Dropoff        string      `json:"dropoff"`
	DepartureTime  time.Time   `json:"departureTime"`
	DriverID       string      `json:"driverId"`
	Seats          int         `json:"seats"`
	AvailableSeats int         `json:"availableSeats"`
	Bookings       []Booking   `json:"bookings"`
	Recurring      *Recurrence `json:"recurring,omitempty"`
	IsRecurring    bool        `json:"isRecurring,omitempty"`
	ParentRideID   string      `json:"parentRideId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func (r *Ride) HasSeats() bool {
	return r.AvailableSeats > 0
}

// ConfirmedBooking returns the rider's active booking on this ride, or nil.
// The embedded list only ever holds confirmed bookings; cancellation removes
// the entry.
func (r *Ride) ConfirmedBooking(riderID string) *Booking {
	for i := range r.Bookings {
		if r.Bookings[i].RiderID == riderID {
			return &r.Bookings[i]
		}
	}
	return nil
}

// MinutesFrom reports the absolute distance between the ride's departure and
// the given instant, in minutes.
func (r *Ride) MinutesFrom(t time.Time) float64 {
	diff := r.DepartureTime.Sub(t).Minutes()
	if diff < 0 {
		return -diff
	}
	return diff
}
