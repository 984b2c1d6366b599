package payment

import (
	"context"
	"testing"

	"juanride/internal/domain"
	"juanride/internal/paymongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, intentID string, status domain.IntentStatus, method string) error {
	args := m.Called(ctx, intentID, status, method)
	return args.Error(0)
}

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingReader) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *MockBookingReader) SetPaymentID(ctx context.Context, bookingID, paymentID int64) error {
	args := m.Called(ctx, bookingID, paymentID)
	return args.Error(0)
}

type MockPaymentNotifier struct {
	mock.Mock
}

func (m *MockPaymentNotifier) NotifyPaymentReceived(ctx context.Context, ownerID, bookingID int64, amount float64) error {
	args := m.Called(ctx, ownerID, bookingID, amount)
	return args.Error(0)
}

func TestParseIntent(t *testing.T) {
	doc := paymongo.Document(`{
		"id": "pi_abc",
		"attributes": {
			"status": "succeeded",
			"payment_method": {"type": "gcash"}
		}
	}`)

	id, status, method := parseIntent(doc)
	assert.Equal(t, "pi_abc", id)
	assert.Equal(t, domain.IntentSucceeded, status)
	assert.Equal(t, "gcash", method)
}

func TestParseIntent_MethodFromPaymentsFallback(t *testing.T) {
	doc := paymongo.Document(`{
		"id": "pi_xyz",
		"attributes": {
			"status": "processing",
			"payments": [{"attributes": {"source": {"type": "paymaya"}}}]
		}
	}`)

	id, status, method := parseIntent(doc)
	assert.Equal(t, "pi_xyz", id)
	assert.Equal(t, domain.IntentProcessing, status)
	assert.Equal(t, "paymaya", method)
}

func TestHandlePaid_ConfirmsPendingBooking(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	notifs := new(MockPaymentNotifier)
	svc := NewService(nil, payments, bookings, notifs)

	p := &domain.Payment{ID: 3, BookingID: 1, IntentID: "pi_1", Amount: 4500, Status: domain.IntentProcessing}
	b := &domain.Booking{ID: 1, OwnerID: 5, Status: domain.BookingPending}

	payments.On("GetByIntentID", mock.Anything, "pi_1").Return(p, nil)
	payments.On("UpdateStatus", mock.Anything, "pi_1", domain.IntentSucceeded, "gcash").Return(nil)
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingConfirmed).Return(nil)
	notifs.On("NotifyPaymentReceived", mock.Anything, int64(5), int64(1), 4500.0).Return(nil)

	svc.HandlePaid(context.Background(), "pi_1", "gcash")

	payments.AssertExpectations(t)
	bookings.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestHandlePaid_AlreadySucceededIsNoop(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	svc := NewService(nil, payments, bookings, nil)

	p := &domain.Payment{ID: 3, BookingID: 1, IntentID: "pi_1", Status: domain.IntentSucceeded}
	payments.On("GetByIntentID", mock.Anything, "pi_1").Return(p, nil)

	svc.HandlePaid(context.Background(), "pi_1", "gcash")

	payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandlePaid_ConfirmedBookingNotReConfirmed(t *testing.T) {
	payments := new(MockPaymentRepository)
	bookings := new(MockBookingReader)
	notifs := new(MockPaymentNotifier)
	svc := NewService(nil, payments, bookings, notifs)

	p := &domain.Payment{ID: 3, BookingID: 1, IntentID: "pi_1", Amount: 1000, Status: domain.IntentProcessing}
	b := &domain.Booking{ID: 1, OwnerID: 5, Status: domain.BookingConfirmed}

	payments.On("GetByIntentID", mock.Anything, "pi_1").Return(p, nil)
	payments.On("UpdateStatus", mock.Anything, "pi_1", domain.IntentSucceeded, "cash").Return(nil)
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	notifs.On("NotifyPaymentReceived", mock.Anything, int64(5), int64(1), 1000.0).Return(nil)

	svc.HandlePaid(context.Background(), "pi_1", "cash")

	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCentavos_RoundsInsteadOfTruncating(t *testing.T) {
	cases := []struct {
		pesos float64
		want  int64
	}{
		{500, 50000},
		{1999.99, 199999}, // 1999.99*100 sits just below 199999 in float64
		{0.01, 1},
		{2748.75, 274875},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, centavos(tc.pesos), "pesos=%v", tc.pesos)
	}
}
