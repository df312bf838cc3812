package services

import (
	"strings"
	"time"

	"unipool/internal/models"
	"unipool/internal/store"
	"unipool/internal/utils"
	apperrors "unipool/pkg/errors"
	"unipool/pkg/logger"
)

// RegisterInput is the caller-supplied data for a new account.
type RegisterInput struct {
	Name  string
	Email string
	Role  models.UserRole
}

type UserService struct {
	store  store.Store
	logger *logger.Logger
	now    func() time.Time
}

func NewUserService(st store.Store, log *logger.Logger) *UserService {
	return &UserService{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// Register creates a user with fresh rating ledgers. Only campus email
// addresses are accepted, and an address can register once.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	if input.Name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if !strings.HasSuffix(input.Email, utils.CampusEmailDomain) {
		return nil, apperrors.NewValidationError("a university email address is required")
	}
	if input.Role != models.UserRoleDriver && input.Role != models.UserRoleRider {
		return nil, apperrors.NewValidationError("role must be Driver or Rider")
	}

	var created models.User
	err := s.store.Update(func(snapshot *store.Snapshot) error {
		for i := range snapshot.Users {
			if snapshot.Users[i].Email == input.Email {
				return apperrors.NewValidationError("a user with this email already exists")
			}
		}

		created = models.User{
			ID:    s.store.NewID("u"),
			Name:  input.Name,
			Email: input.Email,
			Role:  input.Role,
			Ratings: models.RatingLedgers{
				Driver: []models.Rating{},
				Rider:  []models.Rating{},
			},
			RideHistory: []string{},
			CreatedAt:   s.now(),
		}
		snapshot.Users = append(snapshot.Users, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(created.ID).Info("User registered")
	return &created, nil
}

func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	snapshot, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	user := snapshot.FindUserByID(userID)
	if user == nil {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}

	copied := *user
	return &copied, nil
}

// GetUserBookings lists every booking the rider has made, confirmed and
// cancelled alike, in creation order.
func (s *UserService) GetUserBookings(riderID string) []models.Booking {
	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for bookings lookup")
		return []models.Booking{}
	}

	bookings := make([]models.Booking, 0)
	for _, booking := range snapshot.Bookings {
		if booking.RiderID == riderID {
			bookings = append(bookings, booking)
		}
	}
	return bookings
}

// GetDriverRides lists every ride offered by the driver in creation order.
func (s *UserService) GetDriverRides(driverID string) []models.Ride {
	snapshot, err := s.store.Load()
	if err != nil {
		s.logger.WithError(err).Error("Failed to load store for rides lookup")
		return []models.Ride{}
	}

	rides := make([]models.Ride, 0)
	for _, ride := range snapshot.Rides {
		if ride.DriverID == driverID {
			rides = append(rides, ride)
		}
	}
	return rides
}
