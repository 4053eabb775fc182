package usecase

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidID          = errors.New("invalid id")
	ErrTourNotFound       = errors.New("tour not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrReferenceNotFound  = errors.New("tour or user does not exist")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrSessionNotFound    = errors.New("session not found")

	// ErrMissingMetadata means a completed checkout session carried no tour
	// or user reference.
	ErrMissingMetadata = errors.New("checkout session metadata missing tour or user")
	// ErrInvalidMetadata means the references were present but not ids.
	ErrInvalidMetadata = errors.New("checkout session metadata is not a valid id")
	// ErrDuplicateSession means a booking already exists for the session.
	ErrDuplicateSession = errors.New("booking already exists for checkout session")
)
