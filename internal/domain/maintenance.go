package domain

import "time"

// MaintenanceLog is a scheduled out-of-service window for a vehicle.
// The cron scheduler flips the vehicle status at the window boundaries.
type MaintenanceLog struct {
	ID          int64     `json:"id"`
	VehicleID   int64     `json:"vehicle_id"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Applied     bool      `json:"applied"`
	Released    bool      `json:"released"`
	CreatedAt   time.Time `json:"created_at"`
}
