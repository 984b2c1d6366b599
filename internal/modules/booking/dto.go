package booking

import (
	"time"

	"juanride/internal/domain"
)

type CreateBookingRequest struct {
	VehicleID int64     `json:"vehicle_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BookingResponse struct {
	ID                 int64   `json:"id"`
	VehicleID          int64   `json:"vehicle_id"`
	RenterID           int64   `json:"renter_id"`
	OwnerID            int64   `json:"owner_id"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	RentalDays         int     `json:"rental_days"`
	TotalPrice         float64 `json:"total_price"`
	Status             string  `json:"status"`
	PickupConfirmed    bool    `json:"pickup_confirmed"`
	ReturnConfirmed    bool    `json:"return_confirmed"`
	CancellationReason string  `json:"cancellation_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

func ToBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		VehicleID:          b.VehicleID,
		RenterID:           b.RenterID,
		OwnerID:            b.OwnerID,
		StartDate:          b.StartDate.Format("2006-01-02"),
		EndDate:            b.EndDate.Format("2006-01-02"),
		RentalDays:         b.RentalDays(),
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		PickupConfirmed:    b.PickupConfirmed,
		ReturnConfirmed:    b.ReturnConfirmed,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
	}
}
