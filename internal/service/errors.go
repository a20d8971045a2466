package service

import "errors"

// Errors produced by the account lifecycle operations. Handlers map these to
// HTTP status codes in one place.
var (
	// ErrEmailTaken is returned when registering with an email that already has an account
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrAccountNotFound is returned when no account exists for the given email
	ErrAccountNotFound = errors.New("account not found")

	// ErrTokenNotFound is returned when no account holds the given verification token
	ErrTokenNotFound = errors.New("verification token not found")

	// ErrTokenExpired is returned when the verification token is past its deadline
	ErrTokenExpired = errors.New("verification token expired")

	// ErrAlreadyVerified is returned when resending verification for a verified account
	ErrAlreadyVerified = errors.New("email already verified")

	// ErrInvalidCredentials is returned for unknown email or wrong password alike
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotVerified is returned on login when credentials match but the email is unverified
	ErrEmailNotVerified = errors.New("email address not verified")

	// ErrEmailDelivery is returned when the verification email could not be sent
	// after the account mutation was already persisted
	ErrEmailDelivery = errors.New("failed to send verification email")
)

// ValidationError reports malformed or missing user input. The message is safe
// to surface verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}
