package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"unipool/internal/models"
)

// Snapshot is the full persisted state: one document holding every canonical
// collection. Collections are never nil and preserve insertion order.
type Snapshot struct {
	Users    []models.User    `json:"users"`
	Rides    []models.Ride    `json:"rides"`
	Bookings []models.Booking `json:"bookings"`
}

// Normalize guarantees non-nil collections and repairs entries a malformed
// document may carry (nil embedded booking lists, seat counts out of bounds).
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []models.User{}
	}
	if s.Rides == nil {
		s.Rides = []models.Ride{}
	}
	if s.Bookings == nil {
		s.Bookings = []models.Booking{}
	}
	for i := range s.Rides {
		ride := &s.Rides[i]
		if ride.Bookings == nil {
			ride.Bookings = []models.Booking{}
		}
		if ride.AvailableSeats < 0 {
			ride.AvailableSeats = 0
		}
		if ride.AvailableSeats > ride.Seats {
			ride.AvailableSeats = ride.Seats
		}
	}
}

func (s *Snapshot) FindUserByID(id string) *models.User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

func (s *Snapshot) FindRideByID(id string) *models.Ride {
	for i := range s.Rides {
		if s.Rides[i].ID == id {
			return &s.Rides[i]
		}
	}
	return nil
}

func (s *Snapshot) FindBookingByID(id string) *models.Booking {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return &s.Bookings[i]
		}
	}
	return nil
}

// Store owns the single source of truth for users, rides and bookings.
//
// Load returns a private copy of the current snapshot. Update applies a
// mutation to the snapshot and persists it; the store serializes Update calls,
// so read-modify-write sequences inside the callback never interleave. That
// exclusion is what upholds the seat-count and single-confirmed-booking
// invariants under concurrent HTTP traffic.
type Store interface {
	Load() (*Snapshot, error)
	Save(snapshot *Snapshot) error
	Update(fn func(*Snapshot) error) error
	NewID(prefix string) string
}

// NewID generates a collision-resistant identifier: prefix, millisecond
// timestamp, short random suffix. Unique within the process lifetime.
func NewID(prefix string) string {
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// SeedSnapshot returns the demo dataset a fresh store starts from.
func SeedSnapshot() *Snapshot {
	return &Snapshot{
		Users: []models.User{
			{
				ID:    "u1",
				Name:  "Ali Khan",
				Email: "ali@fcccollege.edu.pk",
				Role:  models.UserRoleDriver,
				Ratings: models.RatingLedgers{
					Driver: []models.Rating{},
					Rider:  []models.Rating{},
				},
				RideHistory: []string{},
			},
			{
				ID:    "u2",
				Name:  "Sara Ahmed",
				Email: "sara@fcccollege.edu.pk",
				Role:  models.UserRoleRider,
				Ratings: models.RatingLedgers{
					Driver: []models.Rating{},
					Rider:  []models.Rating{},
				},
				RideHistory: []string{},
			},
		},
		Rides:    []models.Ride{},
		Bookings: []models.Booking{},
	}
}
