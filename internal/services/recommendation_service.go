package services

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"unipool/internal/models"
	"unipool/internal/store"
	"unipool/internal/utils"
	"unipool/pkg/logger"
)

// SmartPreferences are optional caller-supplied constraints for the smart
// ranking. MaxTime is in minutes; zero values disable the constraint.
type SmartPreferences struct {
	Destination string  `json:"destination"`
	MaxTime     float64 `json:"maxTime"`
}

// ScoredRide pairs a candidate ride with its ranking score.
type ScoredRide struct {
	models.Ride
	Score float64 `json:"score"`
}

// RecommendationService ranks candidate rides for a user. All operations are
// read-only against the store and degrade to empty results when the user is
// unknown or the store fails.
type RecommendationService struct {
	store  store.Store
	logger *logger.Logger
	now    func() time.Time
}

func NewRecommendationService(st store.Store, log *logger.Logger) *RecommendationService {
	return &RecommendationService{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// GetBasicRecommendations ranks campus-bound rides departing within half an
// hour of now. Score is 70% driver reputation, 30% time proximity; the sort
// is stable, so equal scores keep store order.
func (s *RecommendationService) GetBasicRecommendations(userID string) []models.Ride {
	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for recommendations")
		return []models.Ride{}
	}
	if snapshot.FindUserByID(userID) == nil {
		return []models.Ride{}
	}

	now := s.now()
	candidates := make([]models.Ride, 0)
	for _, ride := range snapshot.Rides {
		if ride.Dropoff != utils.CampusDropoff {
			continue
		}
		if !ride.HasSeats() {
			continue
		}
		if ride.MinutesFrom(now) > utils.BasicRecommendationWindow.Minutes() {
			continue
		}
		candidates = append(candidates, ride)
	}

	scores := make(map[string]float64, len(candidates))
	for _, ride := range candidates {
		rating := driverAverage(snapshot, ride.DriverID)
		minutes := ride.MinutesFrom(now)
		if minutes < 1 {
			// A ride departing right now would otherwise divide by zero;
			// proximity saturates at one minute out.
			minutes = 1
		}
		scores[ride.ID] = utils.BasicRatingWeight*rating + utils.BasicProximityWeight*(1/minutes)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return scores[candidates[i].ID] > scores[candidates[j].ID]
	})

	return candidates
}

// GetSmartRecommendations ranks every bookable ride within the hour against
// the user's stated preferences and returns the ten best. Unrated and lightly
// rated drivers get a neutral 3.0 instead of being sunk to zero.
func (s *RecommendationService) GetSmartRecommendations(userID string, prefs *SmartPreferences) []ScoredRide {
	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for smart recommendations")
		return []ScoredRide{}
	}
	if snapshot.FindUserByID(userID) == nil {
		return []ScoredRide{}
	}

	now := s.now()
	scored := make([]ScoredRide, 0)
	for _, ride := range snapshot.Rides {
		if !ride.HasSeats() {
			continue
		}
		minutes := ride.MinutesFrom(now)
		if minutes > utils.SmartRecommendationWindow.Minutes() {
			continue
		}
		if prefs != nil {
			if prefs.Destination != "" && ride.Dropoff != prefs.Destination {
				continue
			}
			if prefs.MaxTime > 0 && minutes > prefs.MaxTime {
				continue
			}
		}

		rating := smartDriverRating(snapshot, ride.DriverID)
		timeScore := 1 - minutes/utils.SmartRecommendationWindow.Minutes()
		if timeScore < 0 {
			timeScore = 0
		}
		seatScore := float64(ride.AvailableSeats) / utils.SeatScoreSaturation
		if seatScore > 1 {
			seatScore = 1
		}

		scored = append(scored, ScoredRide{
			Ride: ride,
			Score: utils.SmartRatingWeight*rating +
				utils.SmartTimeWeight*timeScore +
				utils.SmartSeatWeight*seatScore,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > utils.SmartRecommendationLimit {
		scored = scored[:utils.SmartRecommendationLimit]
	}
	return scored
}

// AnalyzePreferences derives a preference profile from the user's booking
// history: destinations, departure hours and drivers, each in order of first
// occurrence.
func (s *RecommendationService) AnalyzePreferences(userID string) *models.Preferences {
	prefs := &models.Preferences{
		FavoriteDestinations: []string{},
		PreferredTimes:       []int{},
		FavoriteDrivers:      []string{},
	}

	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for preference analysis")
		return prefs
	}
	if snapshot.FindUserByID(userID) == nil {
		return prefs
	}

	for _, booking := range snapshot.Bookings {
		if booking.RiderID != userID {
			continue
		}
		ride := snapshot.FindRideByID(booking.RideID)
		if ride == nil {
			continue
		}

		if !containsString(prefs.FavoriteDestinations, ride.Dropoff) {
			prefs.FavoriteDestinations = append(prefs.FavoriteDestinations, ride.Dropoff)
		}
		hour := ride.DepartureTime.Hour()
		if !containsInt(prefs.PreferredTimes, hour) {
			prefs.PreferredTimes = append(prefs.PreferredTimes, hour)
		}
		if !containsString(prefs.FavoriteDrivers, ride.DriverID) {
			prefs.FavoriteDrivers = append(prefs.FavoriteDrivers, ride.DriverID)
		}
	}

	return prefs
}

// driverAverage is the mean of the driver's "as driver" ledger, 0 when the
// ledger is empty or the driver is unknown.
func driverAverage(snapshot *store.Snapshot, driverID string) float64 {
	driver := snapshot.FindUserByID(driverID)
	if driver == nil {
		return 0
	}
	return ledgerMean(driver.Ratings.Driver)
}

// smartDriverRating applies cold-start smoothing: fewer than three ratings
// yields the neutral default instead of the raw mean.
func smartDriverRating(snapshot *store.Snapshot, driverID string) float64 {
	driver := snapshot.FindUserByID(driverID)
	if driver == nil || len(driver.Ratings.Driver) < utils.ColdStartMinRatings {
		return utils.ColdStartDefaultRating
	}
	return ledgerMean(driver.Ratings.Driver)
}

func ledgerMean(ratings []models.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	scores := make([]float64, len(ratings))
	for i, r := range ratings {
		scores[i] = float64(r.Score)
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return 0
	}
	return mean
}

func containsString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
