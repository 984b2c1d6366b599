package commission

import (
	"context"
	"testing"

	"juanride/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) CreateIfAbsent(ctx context.Context, c *domain.Commission) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommissionRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Commission, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Commission), args.Error(1)
}

func (m *MockCommissionRepository) MarkPaid(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCommissionRepository) SumByStatus(ctx context.Context, status domain.CommissionStatus) (float64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCommissionRepository) ListBookingsMissingCommission(ctx context.Context, limit int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type fixedRate float64

func (r fixedRate) CommissionRate(ctx context.Context) (float64, error) {
	return float64(r), nil
}

func TestNormalizeMethod(t *testing.T) {
	cases := []struct {
		in   string
		want domain.PaymentMethod
	}{
		{"gcash", domain.MethodGCash},
		{"paymaya", domain.MethodPayMaya},
		{"qrph", domain.MethodQRPh},
		{"grabpay", domain.MethodGrabPay},
		{"billease", domain.MethodBillease},
		{"cash", domain.MethodCash},
		{"", domain.MethodCash},
		{"GCASH", domain.MethodCash},
		{"bank_transfer", domain.MethodCash},
		{"bitcoin", domain.MethodCash},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeMethod(tc.in), "method %q", tc.in)
	}
}

func TestCreateForBooking_ComputesAmountFromRate(t *testing.T) {
	repo := new(MockCommissionRepository)
	svc := NewService(repo, fixedRate(0.10))

	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(c *domain.Commission) bool {
		return c.BookingID == 1 && c.CommissionAmount == 450.0 && c.RentalAmount == 4500.0
	})).Return(true, nil)

	b := &domain.Booking{ID: 1, OwnerID: 5, TotalPrice: 4500}
	c, err := svc.CreateForBooking(context.Background(), b, "gcash")

	assert.NoError(t, err)
	assert.Equal(t, domain.MethodGCash, c.PaymentMethod)
	assert.Equal(t, domain.CommissionPending, c.Status)
	repo.AssertExpectations(t)
}

func TestCreateForBooking_IdempotentReturnsExistingRow(t *testing.T) {
	repo := new(MockCommissionRepository)
	svc := NewService(repo, fixedRate(0.10))

	existing := &domain.Commission{ID: 42, BookingID: 1, CommissionAmount: 450}
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(false, nil)
	repo.On("GetByBookingID", mock.Anything, int64(1)).Return(existing, nil)

	b := &domain.Booking{ID: 1, OwnerID: 5, TotalPrice: 9000}
	c, err := svc.CreateForBooking(context.Background(), b, "cash")

	assert.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, 450.0, c.CommissionAmount) // original amount kept
}

func TestCreateForBooking_UnknownMethodRecordedAsCash(t *testing.T) {
	repo := new(MockCommissionRepository)
	svc := NewService(repo, fixedRate(0.10))

	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(c *domain.Commission) bool {
		return c.PaymentMethod == domain.MethodCash
	})).Return(true, nil)

	b := &domain.Booking{ID: 2, OwnerID: 5, TotalPrice: 1000}
	_, err := svc.CreateForBooking(context.Background(), b, "carrier_pigeon")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestBackfill_SkipsFailuresAndCounts(t *testing.T) {
	repo := new(MockCommissionRepository)
	svc := NewService(repo, fixedRate(0.10))

	bookings := []domain.Booking{
		{ID: 1, OwnerID: 5, TotalPrice: 1000},
		{ID: 2, OwnerID: 5, TotalPrice: 2000},
		{ID: 3, OwnerID: 6, TotalPrice: 3000},
	}
	repo.On("ListBookingsMissingCommission", mock.Anything, 100).Return(bookings, nil)
	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(c *domain.Commission) bool {
		return c.BookingID == 2
	})).Return(false, assert.AnError)
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(true, nil)

	created, err := svc.Backfill(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, 2, created)
}
