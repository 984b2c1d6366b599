package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"juanride/internal/domain"
)

var ErrDuplicateReview = errors.New("booking already reviewed")

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;uniqueIndex:idx_review_booking"`
	VehicleID int64     `gorm:"column:vehicle_id;index"`
	RenterID  int64     `gorm:"column:renter_id"`
	Rating    int       `gorm:"column:rating"`
	Comment   *string   `gorm:"column:comment"`
	ImageURLs *string   `gorm:"column:image_urls"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	var comment string
	if m.Comment != nil {
		comment = *m.Comment
	}
	var urls []string
	if m.ImageURLs != nil && *m.ImageURLs != "" {
		_ = json.Unmarshal([]byte(*m.ImageURLs), &urls)
	}
	return &domain.Review{
		ID:        m.ID,
		BookingID: m.BookingID,
		VehicleID: m.VehicleID,
		RenterID:  m.RenterID,
		Rating:    m.Rating,
		Comment:   comment,
		ImageURLs: urls,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	var comment, urls *string
	if rv.Comment != "" {
		v := rv.Comment
		comment = &v
	}
	if len(rv.ImageURLs) > 0 {
		raw, _ := json.Marshal(rv.ImageURLs)
		s := string(raw)
		urls = &s
	}
	m := reviewModel{
		BookingID: rv.BookingID,
		VehicleID: rv.VehicleID,
		RenterID:  rv.RenterID,
		Rating:    rv.Rating,
		Comment:   comment,
		ImageURLs: urls,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReview
		}
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) ListByVehicle(ctx context.Context, vehicleID int64, limit int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []reviewModel
	tx := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").Limit(limit).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&reviewModel{}).Where("booking_id = ?", bookingID).Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
