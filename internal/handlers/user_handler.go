package handlers

import (
	"github.com/gin-gonic/gin"

	"unipool/internal/models"
	"unipool/internal/services"
	"unipool/internal/utils"
	"unipool/internal/validators"
)

type UserHandler struct {
	userService   *services.UserService
	ratingService *services.RatingService
}

func NewUserHandler(userService *services.UserService, ratingService *services.RatingService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		ratingService: ratingService,
	}
}

// Register creates a new account from a campus email address.
func (h *UserHandler) Register(c *gin.Context) {
	var request validators.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateRegisterRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		Name:  request.Name,
		Email: request.Email,
		Role:  models.UserRole(request.Role),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "User registered successfully", user)
}

// GetUser fetches a user by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "User retrieved successfully", user)
}

// GetUserBookings lists the user's bookings, confirmed and cancelled.
func (h *UserHandler) GetUserBookings(c *gin.Context) {
	bookings := h.userService.GetUserBookings(c.Param("id"))
	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{Count: len(bookings)})
}

// GetDriverRides lists the rides the user offers as a driver.
func (h *UserHandler) GetDriverRides(c *gin.Context) {
	rides := h.userService.GetDriverRides(c.Param("id"))
	utils.SuccessResponseWithMeta(c, "Rides retrieved successfully", rides, &utils.Meta{Count: len(rides)})
}

// GetUserRatings returns the user's ledger for the requested category
// (default driver) together with its average.
func (h *UserHandler) GetUserRatings(c *gin.Context) {
	category := models.RatingCategory(c.DefaultQuery("category", string(models.RatingCategoryDriver)))
	if category != models.RatingCategoryDriver && category != models.RatingCategoryRider {
		utils.BadRequestResponse(c, "category must be driver or rider")
		return
	}

	userID := c.Param("id")
	ratings := h.ratingService.GetUserRatings(userID, category)
	average, count := h.ratingService.GetAverageRating(userID, category)

	utils.SuccessResponse(c, "Ratings retrieved successfully", gin.H{
		"ratings": ratings,
		"average": average,
		"count":   count,
	})
}

// SubmitRating records a rating on the user's ledger, replacing any earlier
// rating from the same rater.
func (h *UserHandler) SubmitRating(c *gin.Context) {
	var request validators.SubmitRatingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateSubmitRatingRequest(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	user, err := h.ratingService.SubmitRating(
		c.Param("id"),
		request.RaterID,
		models.RatingCategory(request.Category),
		request.Score,
		request.Review,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Rating submitted successfully", user)
}
