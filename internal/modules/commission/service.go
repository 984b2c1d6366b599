package commission

import (
	"context"
	"errors"
	"log"
	"math"

	"juanride/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("commission not found")

type CommissionRepository interface {
	CreateIfAbsent(ctx context.Context, c *domain.Commission) (bool, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Commission, error)
	MarkPaid(ctx context.Context, id int64) error
	SumByStatus(ctx context.Context, status domain.CommissionStatus) (float64, error)
	ListBookingsMissingCommission(ctx context.Context, limit int) ([]domain.Booking, error)
}

type RateSource interface {
	CommissionRate(ctx context.Context) (float64, error)
}

type Service struct {
	commissions CommissionRepository
	rates       RateSource
}

func NewService(commissions CommissionRepository, rates RateSource) *Service {
	return &Service{commissions: commissions, rates: rates}
}

// NormalizeMethod maps a free-form payment method string onto the closed set
// commissions are recorded against. Anything unrecognized counts as cash.
func NormalizeMethod(method string) domain.PaymentMethod {
	switch domain.PaymentMethod(method) {
	case domain.MethodGCash, domain.MethodPayMaya, domain.MethodQRPh,
		domain.MethodGrabPay, domain.MethodBillease, domain.MethodCash:
		return domain.PaymentMethod(method)
	default:
		return domain.MethodCash
	}
}

// Rate returns the platform commission rate from system settings.
func (s *Service) Rate(ctx context.Context) (float64, error) {
	return s.rates.CommissionRate(ctx)
}

// CreateForBooking records the platform commission for a booking. Creation is
// idempotent on booking_id: a repeat call returns the existing row untouched,
// keeping the original amount even if the rate has changed since.
func (s *Service) CreateForBooking(ctx context.Context, b *domain.Booking, paymentMethod string) (*domain.Commission, error) {
	rate, err := s.rates.CommissionRate(ctx)
	if err != nil {
		return nil, err
	}

	c := &domain.Commission{
		BookingID:        b.ID,
		OwnerID:          b.OwnerID,
		RentalAmount:     b.TotalPrice,
		CommissionAmount: math.Round(b.TotalPrice*rate*100) / 100,
		PaymentMethod:    NormalizeMethod(paymentMethod),
		Status:           domain.CommissionPending,
	}

	created, err := s.commissions.CreateIfAbsent(ctx, c)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.commissions.GetByBookingID(ctx, b.ID)
	}
	return c, nil
}

func (s *Service) GetByBooking(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	c, err := s.commissions.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Commission, error) {
	return s.commissions.ListByOwner(ctx, ownerID)
}

func (s *Service) MarkPaid(ctx context.Context, id int64) error {
	return s.commissions.MarkPaid(ctx, id)
}

func (s *Service) TotalByStatus(ctx context.Context, status domain.CommissionStatus) (float64, error) {
	return s.commissions.SumByStatus(ctx, status)
}

// Backfill creates commissions for qualifying bookings that never got one.
// Returns how many rows were written.
func (s *Service) Backfill(ctx context.Context, limit int) (int, error) {
	bookings, err := s.commissions.ListBookingsMissingCommission(ctx, limit)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := range bookings {
		b := &bookings[i]
		if _, err := s.CreateForBooking(ctx, b, string(domain.MethodCash)); err != nil {
			log.Printf("level=error msg=commission backfill failed booking_id=%d err=%v", b.ID, err)
			continue
		}
		created++
	}
	return created, nil
}
