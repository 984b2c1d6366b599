package booking

import (
	"context"
	"time"

	"juanride/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error)
	ListByRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
	ConfirmPickup(ctx context.Context, bookingID, vehicleID int64) error
	ConfirmReturn(ctx context.Context, bookingID, vehicleID int64) error
	CancelWithReason(ctx context.Context, bookingID int64, reason string) error
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type CommissionCreator interface {
	CreateForBooking(ctx context.Context, b *domain.Booking, paymentMethod string) (*domain.Commission, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, ownerID, bookingID, vehicleID int64) error
	NotifyBookingConfirmed(ctx context.Context, renterID, bookingID int64) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error
	NotifyBookingCompleted(ctx context.Context, renterID, bookingID int64) error
}
