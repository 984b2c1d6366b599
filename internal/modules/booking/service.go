package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"juanride/internal/domain"
	"juanride/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	bookings     BookingRepository
	vehicles     VehicleReader
	commissions  CommissionCreator
	notifs       NotificationSender
	cancelCutoff time.Duration
}

func NewService(
	bookings BookingRepository,
	vehicles VehicleReader,
	commissions CommissionCreator,
	notifs NotificationSender,
	cancelCutoff time.Duration,
) *Service {
	return &Service{
		bookings:     bookings,
		vehicles:     vehicles,
		commissions:  commissions,
		notifs:       notifs,
		cancelCutoff: cancelCutoff,
	}
}

// Create opens a pending booking for the renter. Availability is checked
// up front and enforced again by the schema's no-double-booking constraint,
// so a concurrent checkout loses cleanly with ErrNotAvailable.
func (s *Service) Create(ctx context.Context, renterID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrValidation
	}
	if req.StartDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, ErrValidation
	}

	v, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if v.OwnerID == renterID {
		return nil, ErrOwnVehicle
	}
	if !v.Bookable() {
		return nil, ErrNotBookable
	}

	ok, err := s.bookings.CheckAvailability(ctx, v.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAvailable
	}

	b := &domain.Booking{
		VehicleID: v.ID,
		RenterID:  renterID,
		OwnerID:   v.OwnerID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.BookingPending,
	}
	b.TotalPrice = math.Round(float64(b.RentalDays())*v.PricePerDay*100) / 100

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, v.OwnerID, b.ID, v.ID)
	}
	return b, nil
}

func (s *Service) Get(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleAdmin && b.RenterID != actorID && b.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListForRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByRenter(ctx, renterID, limit, offset)
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByOwner(ctx, ownerID, limit, offset)
}

// Confirm accepts a pending booking. Only the vehicle owner or an admin may
// confirm.
func (s *Service) Confirm(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleAdmin && b.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if !CanTransition(b.Status, domain.BookingConfirmed) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed); err != nil {
		return nil, err
	}
	b.Status = domain.BookingConfirmed

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingConfirmed(ctx, b.RenterID, b.ID)
	}
	return b, nil
}

// ConfirmPickup moves a confirmed booking to active and marks the vehicle
// rented. Owner only.
func (s *Service) ConfirmPickup(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if !CanTransition(b.Status, domain.BookingActive) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.ConfirmPickup(ctx, b.ID, b.VehicleID); err != nil {
		return nil, err
	}
	b.Status = domain.BookingActive
	b.PickupConfirmed = true
	return b, nil
}

// ConfirmReturn completes an active booking, frees the vehicle, and records
// the platform commission. Commission creation is idempotent, so a retried
// return confirmation never double-charges.
func (s *Service) ConfirmReturn(ctx context.Context, bookingID, actorID int64, paymentMethod string) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != actorID {
		return nil, ErrForbidden
	}
	if !CanTransition(b.Status, domain.BookingCompleted) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.ConfirmReturn(ctx, b.ID, b.VehicleID); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCompleted
	b.ReturnConfirmed = true

	if s.commissions != nil {
		if _, err := s.commissions.CreateForBooking(ctx, b, paymentMethod); err != nil {
			return nil, err
		}
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCompleted(ctx, b.RenterID, b.ID)
	}
	return b, nil
}

// Cancel aborts a pending or confirmed booking. The renter may cancel their
// own booking only until the cutoff before the rental start; an admin may
// cancel any booking at any time. A reason is always required.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole, reason string) (*domain.Booking, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorRole != domain.RoleAdmin {
		if b.RenterID != actorID {
			return nil, ErrForbidden
		}
		if time.Until(b.StartDate) < s.cancelCutoff {
			return nil, ErrCancelTooLate
		}
	}
	if !CanTransition(b.Status, domain.BookingCancelled) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookings.CancelWithReason(ctx, b.ID, reason); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	b.CancellationReason = reason

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.OwnerID, b.ID, reason)
	}
	return b, nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
