package catalog

import "errors"

var (
	ErrNotFound       = errors.New("vehicle not found")
	ErrNotOwner       = errors.New("vehicle belongs to another owner")
	ErrVehicleRented  = errors.New("vehicle is currently rented")
	ErrValidation     = errors.New("validation error")
	ErrInvalidWindow  = errors.New("invalid maintenance window")
	ErrWindowConflict = errors.New("maintenance window overlaps a booking")
)
