package services

import (
	"fmt"
	"time"

	"unipool/internal/models"
	"unipool/internal/store"
	"unipool/internal/utils"
	apperrors "unipool/pkg/errors"
	"unipool/pkg/logger"
)

// RideSpec is the caller-supplied definition of a new ride.
type RideSpec struct {
	Pickup        string
	Dropoff       string
	DepartureTime time.Time
	DriverID      string
	Seats         int
	Recurring     *models.Recurrence
}

// BookingService owns every mutation of rides and bookings: ride creation
// with recurring expansion, seat allocation and cancellation with the late
// penalty policy. All mutations run inside store.Update, so the seat-count
// and single-confirmed-booking invariants hold under concurrent callers.
type BookingService struct {
	store  store.Store
	logger *logger.Logger
	now    func() time.Time
}

func NewBookingService(st store.Store, log *logger.Logger) *BookingService {
	return &BookingService{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// CreateRide validates the spec, persists the base ride and, for recurring
// rides, one instance per selected weekday over the next seven days. Returns
// the base ride.
func (s *BookingService) CreateRide(spec RideSpec) (*models.Ride, error) {
	if err := validateRideSpec(spec); err != nil {
		return nil, err
	}

	var created models.Ride
	err := s.store.Update(func(snapshot *store.Snapshot) error {
		ride := models.Ride{
			ID:             s.store.NewID("r"),
			Pickup:         spec.Pickup,
			Dropoff:        spec.Dropoff,
			DepartureTime:  spec.DepartureTime,
			DriverID:       spec.DriverID,
			Seats:          spec.Seats,
			AvailableSeats: spec.Seats,
			Bookings:       []models.Booking{},
			Recurring:      spec.Recurring,
			CreatedAt:      s.now(),
		}
		snapshot.Rides = append(snapshot.Rides, ride)

		if spec.Recurring != nil && spec.Recurring.Enabled {
			s.expandRecurring(snapshot, &ride)
		}

		created = ride
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogRideEvent(created.ID, "ride_created", map[string]interface{}{
		"driver_id": created.DriverID,
		"seats":     created.Seats,
		"recurring": created.Recurring != nil && created.Recurring.Enabled,
	})
	return &created, nil
}

// expandRecurring appends one dated instance of the base ride for each of the
// next seven calendar days whose weekday appears in the recurrence descriptor.
// Generation is isolated per instance: a failure is logged and skipped, never
// aborting the base ride or the other instances.
func (s *BookingService) expandRecurring(snapshot *store.Snapshot, base *models.Ride) {
	now := s.now()
	for i := 1; i <= utils.RecurringHorizonDays; i++ {
		nextDate := now.AddDate(0, 0, i)
		if !containsDay(base.Recurring.Days, utils.WeekdayAbbrev(nextDate)) {
			continue
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.WithRideID(base.ID).
						WithField("offset_days", i).
						Errorf("Skipping recurring instance: %v", r)
				}
			}()

			instance := *base
			instance.ID = s.store.NewID("r")
			instance.DepartureTime = utils.SameClockOn(nextDate, base.DepartureTime)
			instance.Bookings = []models.Booking{}
			instance.AvailableSeats = base.Seats
			instance.IsRecurring = true
			instance.ParentRideID = base.ID
			snapshot.Rides = append(snapshot.Rides, instance)
		}()
	}
}

// BookRide reserves one seat on a ride for the rider. The booking lands in
// the canonical set and the ride's embedded list in the same update.
func (s *BookingService) BookRide(rideID, riderID, pickupPoint string) (*models.Booking, error) {
	if riderID == "" {
		return nil, apperrors.NewValidationError("rider id is required")
	}

	var booking models.Booking
	err := s.store.Update(func(snapshot *store.Snapshot) error {
		ride := snapshot.FindRideByID(rideID)
		if ride == nil {
			return apperrors.NewNotFoundError("ride " + rideID + " not found")
		}
		if !ride.HasSeats() {
			return apperrors.NewNoSeatsError("no seats available on ride " + rideID)
		}
		if ride.ConfirmedBooking(riderID) != nil {
			return apperrors.NewAlreadyBookedError("rider " + riderID + " already booked ride " + rideID)
		}

		point := pickupPoint
		if point == "" {
			point = ride.Pickup
		}

		booking = models.Booking{
			ID:          s.store.NewID("b"),
			RideID:      ride.ID,
			RiderID:     riderID,
			DriverID:    ride.DriverID,
			Status:      models.BookingStatusConfirmed,
			PickupPoint: point,
			BookingTime: s.now(),
		}

		ride.Bookings = append(ride.Bookings, booking)
		ride.AvailableSeats--
		snapshot.Bookings = append(snapshot.Bookings, booking)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, "booking_confirmed", map[string]interface{}{
		"ride_id":  rideID,
		"rider_id": riderID,
	})
	return &booking, nil
}

// CancelBooking releases the rider's confirmed seat on the ride. Cancelling
// less than an hour before departure appends a system penalty rating to the
// rider's ledger. The canonical booking record is marked cancelled; the seat
// is only released because a confirmed booking actually existed, so repeated
// cancellations can never push availability past the original seat count.
func (s *BookingService) CancelBooking(rideID, riderID string) error {
	var bookingID string
	err := s.store.Update(func(snapshot *store.Snapshot) error {
		ride := snapshot.FindRideByID(rideID)
		if ride == nil {
			return apperrors.NewNotFoundError("ride " + rideID + " not found")
		}

		idx := -1
		for i := range ride.Bookings {
			if ride.Bookings[i].RiderID == riderID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return apperrors.NewNotFoundError(
				fmt.Sprintf("no confirmed booking for rider %s on ride %s", riderID, rideID))
		}
		booking := ride.Bookings[idx]
		bookingID = booking.ID

		untilDeparture := ride.DepartureTime.Sub(s.now())
		if untilDeparture < utils.LateCancellationWindow {
			if rider := snapshot.FindUserByID(riderID); rider != nil {
				rider.Ratings.Rider = append(rider.Ratings.Rider, models.Rating{
					Score:     utils.LateCancellationScore,
					RaterID:   models.SystemRaterID,
					Review:    utils.LateCancellationReview,
					Timestamp: s.now(),
				})
			}
		}

		ride.Bookings = append(ride.Bookings[:idx], ride.Bookings[idx+1:]...)
		if ride.AvailableSeats < ride.Seats {
			ride.AvailableSeats++
		}

		if record := snapshot.FindBookingByID(booking.ID); record != nil {
			record.Status = models.BookingStatusCancelled
			cancelledAt := s.now()
			record.CancelledAt = &cancelledAt
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.LogBookingEvent(bookingID, "booking_cancelled", map[string]interface{}{
		"ride_id":  rideID,
		"rider_id": riderID,
	})
	return nil
}

// CleanupOldRides drops rides that departed more than a day ago and returns
// how many were removed.
func (s *BookingService) CleanupOldRides() (int, error) {
	removed := 0
	err := s.store.Update(func(snapshot *store.Snapshot) error {
		cutoff := s.now().Add(-utils.StaleRideRetention)
		kept := make([]models.Ride, 0, len(snapshot.Rides))
		for _, ride := range snapshot.Rides {
			if ride.DepartureTime.After(cutoff) {
				kept = append(kept, ride)
			} else {
				removed++
			}
		}
		snapshot.Rides = kept
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.logger.Infof("Removed %d stale rides", removed)
	}
	return removed, nil
}

func validateRideSpec(spec RideSpec) error {
	if spec.Pickup == "" {
		return apperrors.NewValidationError("pickup is required")
	}
	if spec.Dropoff == "" {
		return apperrors.NewValidationError("dropoff is required")
	}
	if spec.DepartureTime.IsZero() {
		return apperrors.NewValidationError("departure time is required")
	}
	if spec.DriverID == "" {
		return apperrors.NewValidationError("driver id is required")
	}
	if spec.Seats < utils.MinSeats {
		return apperrors.NewValidationError("seat count must be at least 1")
	}
	return nil
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
