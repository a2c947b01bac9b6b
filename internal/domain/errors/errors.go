package errors

import (
	"net/http"

	"bazaar/internal/errors"
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
	// Registration intake errors. Uniqueness violations surface as 400-level
	// responses with readable messages, never as 500s.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"required fields are missing or invalid",
		"",
	)

	ErrDuplicateRequest = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_REQUEST",
		"a registration request for this email is already under review",
		"",
	)

	ErrDuplicateUser = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_USER",
		"an account with this email already exists",
		"",
	)

	// Review workflow errors.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"the requested resource does not exist",
		"",
	)

	ErrAlreadyProcessed = NewBaseError(
		http.StatusBadRequest,
		"ALREADY_PROCESSED",
		"this registration request has already been reviewed",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusBadRequest,
		"CONFLICT",
		"a conflicting record already exists",
		"",
	)

	// Authorization errors deliberately leak nothing beyond the role gate.
	ErrAuthorization = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"admin access required",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"email or password is incorrect",
		"",
	)

	// Subscription lifecycle errors.
	ErrSubscriptionNotFound = NewBaseError(
		http.StatusNotFound,
		"SUBSCRIPTION_NOT_FOUND",
		"no subscription exists for this vendor",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusBadRequest,
		"INVALID_TRANSITION",
		"the subscription cannot move to the requested state",
		"",
	)

	ErrPaymentVerification = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_VERIFICATION_FAILED",
		"payment could not be verified",
		"",
	)

	ErrEntitlementExceeded = NewBaseError(
		http.StatusForbidden,
		"ENTITLEMENT_EXCEEDED",
		"the current plan does not allow this action",
		"",
	)

	// Transaction errors cover the atomic approval writes; the transaction
	// guarantees rollback, so callers see a generic 500 with no partial state.
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"the operation could not be completed",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"password processing failed",
		"",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

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
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
