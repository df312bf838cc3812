package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"unipool/internal/models"
	"unipool/internal/store"
	"unipool/pkg/logger"
)

// Sunday noon; the recurring-ride tests depend on the weekday.
var testNow = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newTestStore(t *testing.T) *store.FileStore {
	t.Helper()
	fs, err := store.NewFileStore(store.FileStoreOptions{
		Path: filepath.Join(t.TempDir(), "unipool_db.json"),
		Seed: false,
	})
	require.NoError(t, err)
	return fs
}

func seedUser(t *testing.T, st *store.FileStore, user models.User) {
	t.Helper()
	if user.Ratings.Driver == nil {
		user.Ratings.Driver = []models.Rating{}
	}
	if user.Ratings.Rider == nil {
		user.Ratings.Rider = []models.Rating{}
	}
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Users = append(s.Users, user)
		return nil
	}))
}

func seedRide(t *testing.T, st *store.FileStore, ride models.Ride) {
	t.Helper()
	if ride.Bookings == nil {
		ride.Bookings = []models.Booking{}
	}
	require.NoError(t, st.Update(func(s *store.Snapshot) error {
		s.Rides = append(s.Rides, ride)
		return nil
	}))
}

func driverRatings(scores ...int) []models.Rating {
	ratings := make([]models.Rating, len(scores))
	for i, score := range scores {
		ratings[i] = models.Rating{Score: score, RaterID: "rater", Timestamp: testNow}
	}
	return ratings
}

// failingStore simulates an unavailable backing medium.
type failingStore struct{}

var errStoreDown = errors.New("store unavailable")

func (f *failingStore) Load() (*store.Snapshot, error)             { return nil, errStoreDown }
func (f *failingStore) Save(_ *store.Snapshot) error               { return errStoreDown }
func (f *failingStore) Update(_ func(*store.Snapshot) error) error { return errStoreDown }
func (f *failingStore) NewID(prefix string) string                 { return store.NewID(prefix) }

func newBookingService(t *testing.T, st store.Store) *BookingService {
	t.Helper()
	svc := NewBookingService(st, logger.NewNopLogger())
	svc.now = fixedNow
	return svc
}

func newRecommendationService(t *testing.T, st store.Store) *RecommendationService {
	t.Helper()
	svc := NewRecommendationService(st, logger.NewNopLogger())
	svc.now = fixedNow
	return svc
}

func newRatingService(t *testing.T, st store.Store) *RatingService {
	t.Helper()
	svc := NewRatingService(st, logger.NewNopLogger())
	svc.now = fixedNow
	return svc
}

func newUserService(t *testing.T, st store.Store) *UserService {
	t.Helper()
	svc := NewUserService(st, logger.NewNopLogger())
	svc.now = fixedNow
	return svc
}

func newSearchService(t *testing.T, st store.Store) *SearchService {
	t.Helper()
	return NewSearchService(st, logger.NewNopLogger())
}
