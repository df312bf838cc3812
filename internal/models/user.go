package models

import (
	"encoding/json"
	"time"
)

type UserRole string
type RatingCategory string

const (
	UserRoleDriver UserRole = "Driver"
	UserRoleRider  UserRole = "Rider"

	RatingCategoryDriver RatingCategory = "driver"
	RatingCategoryRider  RatingCategory = "rider"

	// SystemRaterID marks ratings issued by policy rather than a person,
	// e.g. the late-cancellation penalty.
	SystemRaterID = "system"
)

// Rating is a single entry in a user's rating ledger.
type Rating struct {
	Score     int       `json:"rating"`
	RaterID   string    `json:"raterId"`
	Review    string    `json:"review,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UnmarshalJSON accepts the legacy bare-number form ("driver": [4, 5])
// alongside the record form and coerces it into a record with no rater.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var score float64
	if err := json.Unmarshal(data, &score); err == nil {
		*r = Rating{Score: int(score)}
		return nil
	}

	type ratingAlias Rating
	var alias ratingAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*r = Rating(alias)
	return nil
}

// RatingLedgers holds one ordered rating sequence per role.
type RatingLedgers struct {
	Driver []Rating `json:"driver"`
	Rider  []Rating `json:"rider"`
}

func (l *RatingLedgers) ByCategory(category RatingCategory) []Rating {
	if category == RatingCategoryRider {
		return l.Rider
	}
	return l.Driver
}

func (l *RatingLedgers) SetCategory(category RatingCategory, ratings []Rating) {
	if category == RatingCategoryRider {
		l.Rider = ratings
		return
	}
	l.Driver = ratings
}

// Preferences is the preference profile derived from a user's booking
// history. Each slice is ordered by first occurrence.
type Preferences struct {
	FavoriteDestinations []string `json:"favoriteDestinations"`
	PreferredTimes       []int    `json:"preferredTimes"`
	FavoriteDrivers      []string `json:"favoriteDrivers"`
}

type User struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Role        UserRole      `json:"role"`
	Ratings     RatingLedgers `json:"ratings"`
	RideHistory []string      `json:"rideHistory"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
}
