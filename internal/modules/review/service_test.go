package review

import (
	"context"
	"testing"

	"juanride/internal/domain"
	"juanride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByVehicle(ctx context.Context, vehicleID int64, limit int) ([]domain.Review, error) {
	args := m.Called(ctx, vehicleID, limit)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
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

func TestCreateReview_Success(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingReader)
	svc := NewService(reviews, bookings, nil)

	b := &domain.Booking{ID: 1, VehicleID: 10, RenterID: 7, Status: domain.BookingCompleted}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(rv *domain.Review) bool {
		return rv.VehicleID == 10 && rv.RenterID == 7 && rv.Rating == 5
	})).Return(nil)

	rv, err := svc.Create(context.Background(), 7, CreateReviewRequest{
		BookingID: 1, Rating: 5, Comment: "Smooth ride",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), rv.VehicleID)
}

func TestCreateReview_RejectsIncompleteBooking(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingReader)
	svc := NewService(reviews, bookings, nil)

	b := &domain.Booking{ID: 1, RenterID: 7, Status: domain.BookingActive}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := svc.Create(context.Background(), 7, CreateReviewRequest{BookingID: 1, Rating: 4})
	assert.ErrorIs(t, err, ErrBookingNotEnded)
}

func TestCreateReview_RejectsOtherRentersBooking(t *testing.T) {
	bookings := new(MockBookingReader)
	svc := NewService(new(MockReviewRepository), bookings, nil)

	b := &domain.Booking{ID: 1, RenterID: 7, Status: domain.BookingCompleted}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	_, err := svc.Create(context.Background(), 8, CreateReviewRequest{BookingID: 1, Rating: 4})
	assert.ErrorIs(t, err, ErrNotYourBooking)
}

func TestCreateReview_DuplicateMapsToAlreadyReviewed(t *testing.T) {
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingReader)
	svc := NewService(reviews, bookings, nil)

	b := &domain.Booking{ID: 1, VehicleID: 10, RenterID: 7, Status: domain.BookingCompleted}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	reviews.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateReview)

	_, err := svc.Create(context.Background(), 7, CreateReviewRequest{BookingID: 1, Rating: 3})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReview_RatingBounds(t *testing.T) {
	svc := NewService(new(MockReviewRepository), new(MockBookingReader), nil)

	_, err := svc.Create(context.Background(), 7, CreateReviewRequest{BookingID: 1, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(context.Background(), 7, CreateReviewRequest{BookingID: 1, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)
}
