package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"juanride/internal/domain"
)

// ErrBookingConflict is returned when the schema-level no-double-booking
// constraint rejects an insert.
var ErrBookingConflict = errors.New("booking date range conflict")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	VehicleID          int64      `gorm:"column:vehicle_id;index"`
	RenterID           int64      `gorm:"column:renter_id;index"`
	OwnerID            int64      `gorm:"column:owner_id;index"`
	StartDate          time.Time  `gorm:"column:start_date"`
	EndDate            time.Time  `gorm:"column:end_date"`
	TotalPrice         float64    `gorm:"column:total_price"`
	Status             string     `gorm:"column:status"`
	PaymentID          *int64     `gorm:"column:payment_id"`
	PickupConfirmed    bool       `gorm:"column:pickup_confirmed"`
	ReturnConfirmed    bool       `gorm:"column:return_confirmed"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var reason string
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		VehicleID:          m.VehicleID,
		RenterID:           m.RenterID,
		OwnerID:            m.OwnerID,
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		TotalPrice:         m.TotalPrice,
		Status:             domain.BookingStatus(m.Status),
		PaymentID:          m.PaymentID,
		PickupConfirmed:    m.PickupConfirmed,
		ReturnConfirmed:    m.ReturnConfirmed,
		CancellationReason: reason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		CancelledAt:        m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var reason *string
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		VehicleID:          b.VehicleID,
		RenterID:           b.RenterID,
		OwnerID:            b.OwnerID,
		StartDate:          b.StartDate,
		EndDate:            b.EndDate,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		PaymentID:          b.PaymentID,
		PickupConfirmed:    b.PickupConfirmed,
		ReturnConfirmed:    b.ReturnConfirmed,
		CancellationReason: reason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
		CancelledAt:        b.CancelledAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) {
			// 23P01 exclusion_violation comes from idx_no_double_booking.
			if pgErr.Code == "23P01" || (pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking") {
				return ErrBookingConflict
			}
		}
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CheckAvailability reports whether the vehicle is free of blocking bookings
// over [start, end). Two ranges overlap iff each starts before the other ends.
func (r *BookingRepository) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Where("status IN ?", []string{
			string(domain.BookingPending),
			string(domain.BookingConfirmed),
			string(domain.BookingActive),
		}).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt == 0, nil
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "renter_id = ?", renterID, limit, offset)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.Booking, error) {
	return r.list(ctx, "owner_id = ?", ownerID, limit, offset)
}

func (r *BookingRepository) list(ctx context.Context, cond string, arg any, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var rows []bookingModel
	tx := r.db.WithContext(ctx).Where(cond, arg).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("status", string(status)).Error
}

func (r *BookingRepository) SetPaymentID(ctx context.Context, bookingID, paymentID int64) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Update("payment_id", paymentID).Error
}

// ConfirmPickup moves the booking to active and the vehicle to rented in one
// transaction, so a failure leaves neither half applied.
func (r *BookingRepository) ConfirmPickup(ctx context.Context, bookingID, vehicleID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookingModel{}).Where("id = ?", bookingID).
			Updates(map[string]any{
				"status":           string(domain.BookingActive),
				"pickup_confirmed": true,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&vehicleModel{}).Where("id = ?", vehicleID).
			Update("status", string(domain.VehicleRented)).Error
	})
}

// ConfirmReturn completes the booking and frees the vehicle atomically.
func (r *BookingRepository) ConfirmReturn(ctx context.Context, bookingID, vehicleID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookingModel{}).Where("id = ?", bookingID).
			Updates(map[string]any{
				"status":           string(domain.BookingCompleted),
				"return_confirmed": true,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&vehicleModel{}).Where("id = ?", vehicleID).
			Update("status", string(domain.VehicleAvailable)).Error
	})
}

func (r *BookingRepository) CancelWithReason(ctx context.Context, bookingID int64, reason string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]any{
			"status":              string(domain.BookingCancelled),
			"cancellation_reason": reason,
			"cancelled_at":        now,
		}).Error
}

// ListStalePending returns pending bookings created before the cutoff; the
// expiry job cancels them.
func (r *BookingRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", string(domain.BookingPending), cutoff).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
