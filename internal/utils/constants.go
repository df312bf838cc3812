package utils

import "time"

// Application Constants
const (
	AppName    = "UniPool"
	AppVersion = "1.0.0"

	// Matching
	SearchTimeWindow = 30 * time.Minute // ride departure vs. requested time

	// Booking policy
	MinSeats               = 1
	LateCancellationWindow = 60 * time.Minute
	LateCancellationScore  = 2
	LateCancellationReview = "Late cancellation penalty"
	RecurringHorizonDays   = 7
	StaleRideRetention     = 24 * time.Hour

	// Recommendations
	CampusDropoff             = "FCC"
	BasicRecommendationWindow = 30 * time.Minute
	SmartRecommendationWindow = 60 * time.Minute
	SmartRecommendationLimit  = 10
	ColdStartMinRatings       = 3
	ColdStartDefaultRating    = 3.0
	SeatScoreSaturation       = 4.0

	// Basic score weights
	BasicRatingWeight    = 0.7
	BasicProximityWeight = 0.3

	// Smart score weights
	SmartRatingWeight = 0.5
	SmartTimeWeight   = 0.3
	SmartSeatWeight   = 0.2

	// Ratings
	MinRatingScore  = 1
	MaxRatingScore  = 5
	MaxReviewLength = 200

	// Registration
	CampusEmailDomain = "fcccollege.edu.pk"
)

// Response status
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrResourceNotFound = "Resource not found"
)
