package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unipool/internal/utils"
	apperrors "unipool/pkg/errors"
)

// respondError maps the core error taxonomy onto HTTP statuses. Persistence
// failures surface unchanged as 500s; everything untyped is treated the same
// way.
func respondError(c *gin.Context, err error) {
	message := err.Error()
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
	case apperrors.ErrorTypeNoSeats:
		utils.ErrorResponse(c, http.StatusConflict, "NO_SEATS_AVAILABLE", message)
	case apperrors.ErrorTypeAlreadyBooked:
		utils.ErrorResponse(c, http.StatusConflict, "ALREADY_BOOKED", message)
	case apperrors.ErrorTypeValidation:
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
	case apperrors.ErrorTypePersistence:
		utils.ErrorResponse(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", message)
	default:
		utils.InternalServerErrorResponse(c)
	}
}
