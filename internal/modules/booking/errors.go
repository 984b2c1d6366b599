package booking

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("booking not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrNotBookable       = errors.New("vehicle is not available for booking")
	ErrNotAvailable      = errors.New("vehicle is already booked for these dates")
	ErrInvalidTransition = errors.New("booking status transition not allowed")
	ErrForbidden         = errors.New("not allowed to act on this booking")
	ErrReasonRequired    = errors.New("cancellation reason is required")
	ErrCancelTooLate     = errors.New("cancellation window has closed")
	ErrOwnVehicle        = errors.New("owners cannot book their own vehicle")
)
