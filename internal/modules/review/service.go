package review

import (
	"context"
	"errors"
	"fmt"
	"io"

	"juanride/internal/domain"
	"juanride/internal/repository"
	"juanride/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotYourBooking  = errors.New("booking belongs to another renter")
	ErrBookingNotEnded = errors.New("booking is not completed yet")
	ErrAlreadyReviewed = errors.New("booking has already been reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByVehicle(ctx context.Context, vehicleID int64, limit int) ([]domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
	store    storage.Storage
}

func NewService(reviews ReviewRepository, bookings BookingReader, store storage.Storage) *Service {
	return &Service{reviews: reviews, bookings: bookings, store: store}
}

// Create records a renter's review of a completed booking. One review per
// booking; the unique index backs the application-level check.
func (s *Service) Create(ctx context.Context, renterID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.RenterID != renterID {
		return nil, ErrNotYourBooking
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotEnded
	}

	rv := &domain.Review{
		BookingID: b.ID,
		VehicleID: b.VehicleID,
		RenterID:  renterID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		ImageURLs: req.ImageURLs,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}
	return rv, nil
}

// ListForVehicle is the public review feed of a listing.
func (s *Service) ListForVehicle(ctx context.Context, vehicleID int64, limit int) ([]domain.Review, error) {
	return s.reviews.ListByVehicle(ctx, vehicleID, limit)
}

// UploadImage stores a review photo and returns its public URL for the
// client to attach to the review.
func (s *Service) UploadImage(ctx context.Context, renterID int64, body io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("reviews/%d/%s", renterID, uuid.NewString())
	if _, err := s.store.Upload(ctx, storage.BucketReviewImages, key, body, contentType); err != nil {
		return "", err
	}
	return s.store.PublicURL(storage.BucketReviewImages, key), nil
}
