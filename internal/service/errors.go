package service

import "errors"

var (
	// ErrInvalidInput wraps request fields that fail service-level validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when attempting to register with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrNonFiniteResult is returned when an operation yields NaN or an infinity,
	// which can be neither stored nor encoded as JSON.
	ErrNonFiniteResult = errors.New("result is not a finite number")

	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	// ErrForbidden is returned when a caller addresses another user's history.
	ErrForbidden = errors.New("forbidden")
)
