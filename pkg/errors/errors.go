package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies the failures the booking core can surface.
type ErrorType string

const (
	// ErrorTypeNotFound indicates a ride or user lookup missed
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeNoSeats indicates a ride has no remaining seats
	ErrorTypeNoSeats ErrorType = "NO_SEATS_AVAILABLE"

	// ErrorTypeAlreadyBooked indicates the rider already holds a confirmed
	// booking on the ride
	ErrorTypeAlreadyBooked ErrorType = "ALREADY_BOOKED"

	// ErrorTypeValidation indicates a malformed request
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypePersistence indicates the backing store rejected a read or write
	ErrorTypePersistence ErrorType = "PERSISTENCE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewNoSeatsError creates a new no-seats-available error
func NewNoSeatsError(message string) *AppError {
	return &AppError{Type: ErrorTypeNoSeats, Message: message}
}

// NewAlreadyBookedError creates a new already-booked error
func NewAlreadyBookedError(message string) *AppError {
	return &AppError{Type: ErrorTypeAlreadyBooked, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewPersistenceError creates a new persistence error wrapping the cause
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypePersistence, Message: message, Err: err}
}

// TypeOf extracts the error type, or "" for plain errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

func IsNotFound(err error) bool      { return TypeOf(err) == ErrorTypeNotFound }
func IsNoSeats(err error) bool       { return TypeOf(err) == ErrorTypeNoSeats }
func IsAlreadyBooked(err error) bool { return TypeOf(err) == ErrorTypeAlreadyBooked }
func IsValidation(err error) bool    { return TypeOf(err) == ErrorTypeValidation }
func IsPersistence(err error) bool   { return TypeOf(err) == ErrorTypePersistence }
