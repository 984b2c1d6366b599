package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed out of s.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

type Booking struct {
	ID                 int64         `json:"id"`
	VehicleID          int64         `json:"vehicle_id" validate:"required"`
	RenterID           int64         `json:"renter_id" validate:"required"`
	OwnerID            int64         `json:"owner_id"`
	StartDate          time.Time     `json:"start_date" validate:"required"`
	EndDate            time.Time     `json:"end_date" validate:"required"`
	TotalPrice         float64       `json:"total_price"`
	Status             BookingStatus `json:"status"`
	PaymentID          *int64        `json:"payment_id,omitempty"`
	PickupConfirmed    bool          `json:"pickup_confirmed"`
	ReturnConfirmed    bool          `json:"return_confirmed"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Renter  *User    `json:"renter,omitempty" gorm:"foreignKey:RenterID"`
}

// RentalDays returns the billable number of days, never less than one.
func (b *Booking) RentalDays() int {
	days := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
