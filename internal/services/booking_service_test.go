package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipool/internal/models"
	"unipool/internal/store"
	apperrors "unipool/pkg/errors"
)

func validSpec() RideSpec {
	return RideSpec{
		Pickup:        "Gulberg",
		Dropoff:       "FCC",
		DepartureTime: testNow.Add(2 * time.Hour),
		DriverID:      "d1",
		Seats:         3,
	}
}

func TestCreateRideValidatesSpec(t *testing.T) {
	svc := newBookingService(t, newTestStore(t))

	cases := []struct {
		name   string
		mutate func(*RideSpec)
	}{
		{"missing pickup", func(s *RideSpec) { s.Pickup = "" }},
		{"missing dropoff", func(s *RideSpec) { s.Dropoff = "" }},
		{"missing departure", func(s *RideSpec) { s.DepartureTime = time.Time{} }},
		{"missing driver", func(s *RideSpec) { s.DriverID = "" }},
		{"zero seats", func(s *RideSpec) { s.Seats = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := validSpec()
			tc.mutate(&spec)

			_, err := svc.CreateRide(spec)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestCreateRideSetsFullAvailability(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	ride, err := svc.CreateRide(validSpec())
	require.NoError(t, err)

	assert.NotEmpty(t, ride.ID)
	assert.Equal(t, 3, ride.Seats)
	assert.Equal(t, 3, ride.AvailableSeats)
	assert.Empty(t, ride.Bookings)
	assert.False(t, ride.IsRecurring)

	snapshot, err := st.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.Rides, 1)
}

func TestCreateRideExpandsRecurringInstances(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	// testNow is Sunday 2026-08-30; Mon/Wed within the 7-day horizon are
	// Aug 31 and Sep 2.
	spec := validSpec()
	spec.DepartureTime = time.Date(2026, time.August, 30, 17, 30, 0, 0, time.UTC)
	spec.Recurring = &models.Recurrence{Enabled: true, Days: []string{"Mon", "Wed"}}

	base, err := svc.CreateRide(spec)
	require.NoError(t, err)

	snapshot, err := st.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.Rides, 3)

	instances := snapshot.Rides[1:]
	assert.Equal(t, time.Date(2026, time.August, 31, 17, 30, 0, 0, time.UTC), instances[0].DepartureTime)
	assert.Equal(t, time.Date(2026, time.September, 2, 17, 30, 0, 0, time.UTC), instances[1].DepartureTime)

	for _, instance := range instances {
		assert.True(t, instance.IsRecurring)
		assert.Equal(t, base.ID, instance.ParentRideID)
		assert.NotEqual(t, base.ID, instance.ID)
		assert.Equal(t, base.Seats, instance.AvailableSeats)
		assert.Empty(t, instance.Bookings)
	}
}

func TestCreateRideRecurringDisabledGeneratesNothing(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	spec := validSpec()
	spec.Recurring = &models.Recurrence{Enabled: false, Days: []string{"Mon"}}

	_, err := svc.CreateRide(spec)
	require.NoError(t, err)

	snapshot, err := st.Load()
	require.NoError(t, err)
	assert.Len(t, snapshot.Rides, 1)
}

func TestBookRideAllocatesSeat(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	ride, err := svc.CreateRide(validSpec())
	require.NoError(t, err)

	booking, err := svc.BookRide(ride.ID, "u2", "Main Gate")
	require.NoError(t, err)

	assert.Equal(t, ride.ID, booking.RideID)
	assert.Equal(t, "u2", booking.RiderID)
	assert.Equal(t, "d1", booking.DriverID)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "Main Gate", booking.PickupPoint)

	snapshot, err := st.Load()
	require.NoError(t, err)
	stored := snapshot.FindRideByID(ride.ID)
	assert.Equal(t, 2, stored.AvailableSeats)
	require.Len(t, stored.Bookings, 1)
	require.Len(t, snapshot.Bookings, 1)
	assert.Equal(t, booking.ID, snapshot.Bookings[0].ID)
}

func TestBookRideDefaultsPickupPointToRidePickup(t *testing.T) {
	svc := newBookingService(t, newTestStore(t))

	ride, err := svc.CreateRide(validSpec())
	require.NoError(t, err)

	booking, err := svc.BookRide(ride.ID, "u2", "")
	require.NoError(t, err)
	assert.Equal(t, "Gulberg", booking.PickupPoint)
}

func TestBookRideUnknownRide(t *testing.T) {
	svc := newBookingService(t, newTestStore(t))

	_, err := svc.BookRide("missing", "u2", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBookRideRejectsDoubleBooking(t *testing.T) {
	svc := newBookingService(t, newTestStore(t))

	ride, err := svc.CreateRide(validSpec())
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "u2", "")
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "u2", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsAlreadyBooked(err))
}

func TestSeatExhaustionAndRecovery(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	spec := validSpec()
	spec.Seats = 2
	ride, err := svc.CreateRide(spec)
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "riderA", "")
	require.NoError(t, err)
	_, err = svc.BookRide(ride.ID, "riderB", "")
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "riderC", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNoSeats(err))

	require.NoError(t, svc.CancelBooking(ride.ID, "riderA"))

	snapshot, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.FindRideByID(ride.ID).AvailableSeats)

	_, err = svc.BookRide(ride.ID, "riderC", "")
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "riderD", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsNoSeats(err))
}

func TestCancelBookingRoundTripsSeatCount(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	ride, err := svc.CreateRide(validSpec())
	require.NoError(t, err)

	booking, err := svc.BookRide(ride.ID, "u2", "")
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(ride.ID, "u2"))

	snapshot, err := st.Load()
	require.NoError(t, err)
	stored := snapshot.FindRideByID(ride.ID)
	assert.Equal(t, 3, stored.AvailableSeats)
	assert.Empty(t, stored.Bookings)

	record := snapshot.FindBookingByID(booking.ID)
	require.NotNil(t, record)
	assert.Equal(t, models.BookingStatusCancelled, record.Status)
	require.NotNil(t, record.CancelledAt)

	// Re-booking issues a fresh booking, never resurrects the old record.
	rebooked, err := svc.BookRide(ride.ID, "u2", "")
	require.NoError(t, err)
	assert.NotEqual(t, booking.ID, rebooked.ID)
}

func TestCancelBookingWithoutBookingFails(t *testing.T) {
	svc := newBookingService(t, newTestStore(t))

	ride, err := svc.CreateRide(validSpec())
	require.NoError(t, err)

	err = svc.CancelBooking(ride.ID, "u2")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	err = svc.CancelBooking("missing", "u2")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLateCancellationAppendsPenaltyRating(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)
	seedUser(t, st, models.User{ID: "u2", Name: "Sara", Email: "sara@fcccollege.edu.pk", Role: models.UserRoleRider})

	spec := validSpec()
	spec.DepartureTime = testNow.Add(30 * time.Minute)
	ride, err := svc.CreateRide(spec)
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "u2", "")
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ride.ID, "u2"))

	snapshot, err := st.Load()
	require.NoError(t, err)
	ledger := snapshot.FindUserByID("u2").Ratings.Rider
	require.Len(t, ledger, 1)
	assert.Equal(t, 2, ledger[0].Score)
	assert.Equal(t, models.SystemRaterID, ledger[0].RaterID)
	assert.Equal(t, "Late cancellation penalty", ledger[0].Review)
}

func TestEarlyCancellationLeavesLedgerUntouched(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)
	seedUser(t, st, models.User{ID: "u2", Name: "Sara", Email: "sara@fcccollege.edu.pk", Role: models.UserRoleRider})

	spec := validSpec()
	spec.DepartureTime = testNow.Add(2 * time.Hour)
	ride, err := svc.CreateRide(spec)
	require.NoError(t, err)

	_, err = svc.BookRide(ride.ID, "u2", "")
	require.NoError(t, err)
	require.NoError(t, svc.CancelBooking(ride.ID, "u2"))

	snapshot, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, snapshot.FindUserByID("u2").Ratings.Rider)
}

func TestCleanupOldRides(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	seedRide(t, st, models.Ride{ID: "old", DepartureTime: testNow.Add(-48 * time.Hour), Seats: 2, AvailableSeats: 2})
	seedRide(t, st, models.Ride{ID: "recent", DepartureTime: testNow.Add(-1 * time.Hour), Seats: 2, AvailableSeats: 2})
	seedRide(t, st, models.Ride{ID: "future", DepartureTime: testNow.Add(time.Hour), Seats: 2, AvailableSeats: 2})

	removed, err := svc.CleanupOldRides()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	snapshot, err := st.Load()
	require.NoError(t, err)
	require.Len(t, snapshot.Rides, 2)
	assert.Nil(t, snapshot.FindRideByID("old"))
	assert.NotNil(t, snapshot.FindRideByID("recent"))
}

func TestSeatBoundsInvariantAcrossMutations(t *testing.T) {
	st := newTestStore(t)
	svc := newBookingService(t, st)

	spec := validSpec()
	spec.Seats = 2
	ride, err := svc.CreateRide(spec)
	require.NoError(t, err)

	riders := []string{"a", "b"}
	for _, rider := range riders {
		_, err := svc.BookRide(ride.ID, rider, "")
		require.NoError(t, err)
		assertSeatBounds(t, st, ride.ID)
	}
	for _, rider := range riders {
		require.NoError(t, svc.CancelBooking(ride.ID, rider))
		assertSeatBounds(t, st, ride.ID)
	}

	snapshot, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.FindRideByID(ride.ID).AvailableSeats)
}

func assertSeatBounds(t *testing.T, st *store.FileStore, rideID string) {
	t.Helper()
	snapshot, err := st.Load()
	require.NoError(t, err)
	ride := snapshot.FindRideByID(rideID)
	require.NotNil(t, ride)
	assert.GreaterOrEqual(t, ride.AvailableSeats, 0)
	assert.LessOrEqual(t, ride.AvailableSeats, ride.Seats)
}
