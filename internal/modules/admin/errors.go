package admin

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrUserNotFound    = errors.New("user not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidRole     = errors.New("invalid role")
	ErrReasonRequired  = errors.New("rejection reason is required")
	ErrAlreadyDecided  = errors.New("vehicle has already been reviewed")
)
