package domain

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleInactive    VehicleStatus = "inactive"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleRented      VehicleStatus = "rented"
)

type Vehicle struct {
	ID              int64          `json:"id"`
	OwnerID         int64          `json:"owner_id" validate:"required"`
	Make            string         `json:"make"`
	Model           string         `json:"model"`
	Year            int            `json:"year"`
	PlateNumber     string         `json:"plate_number"`
	Description     string         `json:"description,omitempty"`
	PricePerDay     float64        `json:"price_per_day" validate:"required,gt=0"`
	Location        string         `json:"location"`
	ApprovalStatus  ApprovalStatus `json:"approval_status"`
	Status          VehicleStatus  `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	ImageURLs       []string       `json:"image_urls,omitempty" gorm:"serializer:json"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// Bookable reports whether the vehicle can appear in public search
// and accept new bookings.
func (v *Vehicle) Bookable() bool {
	return v.ApprovalStatus == ApprovalApproved && v.Status == VehicleAvailable
}
