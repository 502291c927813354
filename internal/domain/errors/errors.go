// Package errors defines the application error taxonomy. Every error that
// crosses the usecase boundary maps to an HTTP status code and a stable
// business error code consumed by the error middleware.
package errors

import (
	"net/http"

	"marketplace/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Account-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusBadRequest,
		"USER_ALREADY_EXISTS",
		"Username or email is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
		"",
	)

	ErrRoleImmutable = NewBaseError(
		http.StatusBadRequest,
		"ROLE_IMMUTABLE",
		"Account type cannot be changed after registration",
		"",
	)

	ErrBusinessUserNotFound = NewBaseError(
		http.StatusNotFound,
		"BUSINESS_USER_NOT_FOUND",
		"Business user not found",
		"",
	)

	// Offer-related errors
	ErrOfferNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_NOT_FOUND",
		"Offer not found",
		"",
	)

	ErrOfferDetailNotFound = NewBaseError(
		http.StatusNotFound,
		"OFFER_DETAIL_NOT_FOUND",
		"Offer detail not found",
		"",
	)

	ErrNotEnoughDetails = NewBaseError(
		http.StatusBadRequest,
		"NOT_ENOUGH_DETAILS",
		"An offer requires at least 3 details",
		"",
	)

	ErrUnknownDetail = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_DETAIL",
		"Detail patch references a detail that does not belong to this offer",
		"",
	)

	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		"",
	)

	ErrInvalidOrderStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ORDER_STATUS",
		"Status must be one of in_progress, completed or cancelled",
		"",
	)

	// Review-related errors
	ErrReviewNotFound = NewBaseError(
		http.StatusNotFound,
		"REVIEW_NOT_FOUND",
		"Review not found",
		"",
	)

	ErrDuplicateReview = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_REVIEW",
		"You have already reviewed this business",
		"",
	)

	ErrInvalidRating = NewBaseError(
		http.StatusBadRequest,
		"INVALID_RATING",
		"Rating must be between 1 and 5",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Authorization-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"You do not have permission to perform this action",
		"",
	)

	ErrThrottled = NewBaseError(
		http.StatusTooManyRequests,
		"THROTTLED",
		"Request rate limit exceeded",
		"",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)
)

// FieldError is a validation failure bound to a single input field. The
// error middleware renders the field map so callers can correct input
// without parsing prose.
type FieldError struct {
	field   string
	message string
}

// NewFieldError creates a validation error for a single field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{field: field, message: message}
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return e.field + ": " + e.message
}

// HTTPCode returns the HTTP status code
func (e *FieldError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *FieldError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *FieldError) Message() string {
	return "Input validation failed"
}

// Details returns detailed error information
func (e *FieldError) Details() string {
	return e.Error()
}

// Field returns the offending input field name.
func (e *FieldError) Field() string {
	return e.field
}

// FieldMessage returns the message for the offending field.
func (e *FieldError) FieldMessage() string {
	return e.message
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
