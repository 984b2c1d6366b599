package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"juanride/internal/domain"
)

type SupportRepository struct {
	db *gorm.DB
}

func NewSupportRepository(db *gorm.DB) *SupportRepository {
	return &SupportRepository{db: db}
}

type supportTicketModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Type      string    `gorm:"column:type"`
	Subject   string    `gorm:"column:subject"`
	Body      *string   `gorm:"column:body"`
	Priority  string    `gorm:"column:priority"`
	Status    string    `gorm:"column:status"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (supportTicketModel) TableName() string { return "support_tickets" }

func toDomainTicket(m supportTicketModel) *domain.SupportTicket {
	var body string
	if m.Body != nil {
		body = *m.Body
	}
	return &domain.SupportTicket{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Subject:   m.Subject,
		Body:      body,
		Priority:  domain.TicketPriority(m.Priority),
		Status:    domain.TicketStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *SupportRepository) Create(ctx context.Context, t *domain.SupportTicket) error {
	var body *string
	if t.Body != "" {
		v := t.Body
		body = &v
	}
	m := supportTicketModel{
		UserID:   t.UserID,
		Type:     t.Type,
		Subject:  t.Subject,
		Body:     body,
		Priority: string(t.Priority),
		Status:   string(t.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTicket(m)
	return nil
}

func (r *SupportRepository) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	var m supportTicketModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTicket(m), nil
}

func (r *SupportRepository) ListByUser(ctx context.Context, userID int64) ([]domain.SupportTicket, error) {
	var rows []supportTicketModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.SupportTicket, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTicket(m))
	}
	return out, nil
}

func (r *SupportRepository) ListOpen(ctx context.Context) ([]domain.SupportTicket, error) {
	var rows []supportTicketModel
	tx := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(domain.TicketOpen), string(domain.TicketInProgress)}).
		Order("created_at ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.SupportTicket, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTicket(m))
	}
	return out, nil
}

func (r *SupportRepository) UpdateStatus(ctx context.Context, ticketID int64, status domain.TicketStatus) error {
	return r.db.WithContext(ctx).Model(&supportTicketModel{}).
		Where("id = ?", ticketID).
		Update("status", string(status)).Error
}
