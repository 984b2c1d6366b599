package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"juanride/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BookingID int64     `gorm:"column:booking_id;index"`
	IntentID  string    `gorm:"column:intent_id;uniqueIndex"`
	Reference string    `gorm:"column:reference"`
	Amount    float64   `gorm:"column:amount"`
	Method    *string   `gorm:"column:method"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	var method string
	if m.Method != nil {
		method = *m.Method
	}
	return &domain.Payment{
		ID:        m.ID,
		BookingID: m.BookingID,
		IntentID:  m.IntentID,
		Reference: m.Reference,
		Amount:    m.Amount,
		Method:    method,
		Status:    domain.IntentStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	var method *string
	if p.Method != "" {
		v := p.Method
		method = &v
	}
	m := paymentModel{
		BookingID: p.BookingID,
		IntentID:  p.IntentID,
		Reference: p.Reference,
		Amount:    p.Amount,
		Method:    method,
		Status:    string(p.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	var m paymentModel
	tx := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("created_at DESC").First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, intentID string, status domain.IntentStatus, method string) error {
	updates := map[string]any{"status": string(status)}
	if method != "" {
		updates["method"] = method
	}
	return r.db.WithContext(ctx).Model(&paymentModel{}).
		Where("intent_id = ?", intentID).
		Updates(updates).Error
}
