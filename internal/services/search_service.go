package services

import (
	"sort"
	"strings"
	"time"

	"unipool/internal/models"
	"unipool/internal/store"
	"unipool/internal/utils"
	apperrors "unipool/pkg/errors"
	"unipool/pkg/logger"
)

// RideFilters narrows a ride search. Zero-valued fields are ignored; all
// supplied fields must match.
type RideFilters struct {
	Pickup  string     // case-insensitive substring
	Dropoff string     // exact match
	Time    *time.Time // departure within SearchTimeWindow of this instant
	ID      string     // exact match
}

type SearchService struct {
	store  store.Store
	logger *logger.Logger
}

func NewSearchService(st store.Store, log *logger.Logger) *SearchService {
	return &SearchService{
		store:  st,
		logger: log,
	}
}

// SearchRides returns the rides matching every supplied filter, ordered
// ascending by departure time. No matches is a valid empty result, and a
// failing store degrades to an empty result as well.
func (s *SearchService) SearchRides(filters RideFilters) []models.Ride {
	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for ride search")
		return []models.Ride{}
	}

	matched := make([]models.Ride, 0, len(snapshot.Rides))
	for _, ride := range snapshot.Rides {
		if filters.Pickup != "" &&
			!strings.Contains(strings.ToLower(ride.Pickup), strings.ToLower(filters.Pickup)) {
			continue
		}
		if filters.Dropoff != "" && ride.Dropoff != filters.Dropoff {
			continue
		}
		if filters.Time != nil && ride.MinutesFrom(*filters.Time) > utils.SearchTimeWindow.Minutes() {
			continue
		}
		if filters.ID != "" && ride.ID != filters.ID {
			continue
		}
		matched = append(matched, ride)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DepartureTime.Before(matched[j].DepartureTime)
	})

	return matched
}

// GetRideByID fetches a single ride through the same matching interface.
func (s *SearchService) GetRideByID(rideID string) (*models.Ride, error) {
	snapshot, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	ride := snapshot.FindRideByID(rideID)
	if ride == nil {
		return nil, apperrors.NewNotFoundError("ride " + rideID + " not found")
	}

	copied := *ride
	return &copied, nil
}
