package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"juanride/internal/domain"
)

type CommissionRepository struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

type commissionModel struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	BookingID        int64     `gorm:"column:booking_id;uniqueIndex:idx_commission_booking"`
	OwnerID          int64     `gorm:"column:owner_id;index"`
	RentalAmount     float64   `gorm:"column:rental_amount"`
	CommissionAmount float64   `gorm:"column:commission_amount"`
	PaymentMethod    string    `gorm:"column:payment_method"`
	Status           string    `gorm:"column:status"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (commissionModel) TableName() string { return "commissions" }

func toDomainCommission(m commissionModel) *domain.Commission {
	return &domain.Commission{
		ID:               m.ID,
		BookingID:        m.BookingID,
		OwnerID:          m.OwnerID,
		RentalAmount:     m.RentalAmount,
		CommissionAmount: m.CommissionAmount,
		PaymentMethod:    domain.PaymentMethod(m.PaymentMethod),
		Status:           domain.CommissionStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// CreateIfAbsent inserts the commission unless one already exists for the
// booking. The unique index on booking_id makes the check-and-insert atomic;
// the returned bool reports whether a row was actually written.
func (r *CommissionRepository) CreateIfAbsent(ctx context.Context, c *domain.Commission) (bool, error) {
	m := commissionModel{
		BookingID:        c.BookingID,
		OwnerID:          c.OwnerID,
		RentalAmount:     c.RentalAmount,
		CommissionAmount: c.CommissionAmount,
		PaymentMethod:    string(c.PaymentMethod),
		Status:           string(c.Status),
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "booking_id"}},
			DoNothing: true,
		}).
		Create(&m)
	if tx.Error != nil {
		return false, tx.Error
	}
	if tx.RowsAffected == 0 {
		return false, nil
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	return true, nil
}

func (r *CommissionRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Commission, error) {
	var m commissionModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCommission(m), nil
}

func (r *CommissionRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Commission, error) {
	var rows []commissionModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Commission, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainCommission(m))
	}
	return out, nil
}

func (r *CommissionRepository) MarkPaid(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&commissionModel{}).
		Where("id = ?", id).
		Update("status", string(domain.CommissionPaid)).Error
}

// SumByStatus is used by the admin dashboard aggregate.
func (r *CommissionRepository) SumByStatus(ctx context.Context, status domain.CommissionStatus) (float64, error) {
	var total *float64
	tx := r.db.WithContext(ctx).Model(&commissionModel{}).
		Where("status = ?", string(status)).
		Select("SUM(commission_amount)").Scan(&total)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// ListBookingsMissingCommission finds qualifying bookings that never got a
// commission row; the backfill walks this set.
func (r *CommissionRepository) ListBookingsMissingCommission(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []bookingModel
	q := `
SELECT b.*
FROM bookings b
LEFT JOIN commissions c ON c.booking_id = b.id
WHERE c.id IS NULL
  AND b.status IN ('confirmed', 'active', 'completed')
ORDER BY b.id
LIMIT ?
`
	tx := r.db.WithContext(ctx).Raw(q, limit).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}
