package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"juanride/internal/domain"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

type identityDocumentModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	SubjectID       int64      `gorm:"column:subject_id;index"`
	DocumentType    string     `gorm:"column:document_type"`
	StorageKey      string     `gorm:"column:storage_key"`
	Status          string     `gorm:"column:status"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	ReviewerID      *int64     `gorm:"column:reviewer_id"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (identityDocumentModel) TableName() string { return "id_documents" }

type businessDocumentModel struct {
	ID              int64      `gorm:"column:id;primaryKey"`
	SubjectID       int64      `gorm:"column:subject_id;index"`
	DocumentType    string     `gorm:"column:document_type"`
	StorageKey      string     `gorm:"column:storage_key"`
	Status          string     `gorm:"column:status"`
	RejectionReason *string    `gorm:"column:rejection_reason"`
	ReviewerID      *int64     `gorm:"column:reviewer_id"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (businessDocumentModel) TableName() string { return "business_documents" }

func toDomainIdentityDoc(m identityDocumentModel) *domain.IdentityDocument {
	var reason string
	if m.RejectionReason != nil {
		reason = *m.RejectionReason
	}
	return &domain.IdentityDocument{
		ID:              m.ID,
		SubjectID:       m.SubjectID,
		DocumentType:    m.DocumentType,
		StorageKey:      m.StorageKey,
		Status:          domain.DocumentStatus(m.Status),
		RejectionReason: reason,
		ReviewerID:      m.ReviewerID,
		ReviewedAt:      m.ReviewedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toDomainBusinessDoc(m businessDocumentModel) *domain.BusinessDocument {
	var reason string
	if m.RejectionReason != nil {
		reason = *m.RejectionReason
	}
	return &domain.BusinessDocument{
		ID:              m.ID,
		SubjectID:       m.SubjectID,
		DocumentType:    m.DocumentType,
		StorageKey:      m.StorageKey,
		Status:          domain.DocumentStatus(m.Status),
		RejectionReason: reason,
		ReviewerID:      m.ReviewerID,
		ReviewedAt:      m.ReviewedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *DocumentRepository) CreateIdentity(ctx context.Context, d *domain.IdentityDocument) error {
	m := identityDocumentModel{
		SubjectID:    d.SubjectID,
		DocumentType: d.DocumentType,
		StorageKey:   d.StorageKey,
		Status:       string(d.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainIdentityDoc(m)
	return nil
}

func (r *DocumentRepository) GetIdentityByID(ctx context.Context, id int64) (*domain.IdentityDocument, error) {
	var m identityDocumentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainIdentityDoc(m), nil
}

func (r *DocumentRepository) ListIdentityBySubject(ctx context.Context, subjectID int64) ([]domain.IdentityDocument, error) {
	var rows []identityDocumentModel
	tx := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.IdentityDocument, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainIdentityDoc(m))
	}
	return out, nil
}

func (r *DocumentRepository) ReviewIdentity(ctx context.Context, docID, reviewerID int64, status domain.DocumentStatus, reason string) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":      string(status),
		"reviewer_id": reviewerID,
		"reviewed_at": now,
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&identityDocumentModel{}).
		Where("id = ?", docID).
		Updates(updates).Error
}

func (r *DocumentRepository) CreateBusiness(ctx context.Context, d *domain.BusinessDocument) error {
	m := businessDocumentModel{
		SubjectID:    d.SubjectID,
		DocumentType: d.DocumentType,
		StorageKey:   d.StorageKey,
		Status:       string(d.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*d = *toDomainBusinessDoc(m)
	return nil
}

func (r *DocumentRepository) GetBusinessByID(ctx context.Context, id int64) (*domain.BusinessDocument, error) {
	var m businessDocumentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBusinessDoc(m), nil
}

func (r *DocumentRepository) ListBusinessBySubject(ctx context.Context, subjectID int64) ([]domain.BusinessDocument, error) {
	var rows []businessDocumentModel
	tx := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.BusinessDocument, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBusinessDoc(m))
	}
	return out, nil
}

func (r *DocumentRepository) ListBusinessPending(ctx context.Context) ([]domain.BusinessDocument, error) {
	var rows []businessDocumentModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.DocumentPendingReview)).
		Order("created_at ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.BusinessDocument, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBusinessDoc(m))
	}
	return out, nil
}

func (r *DocumentRepository) ReviewBusiness(ctx context.Context, docID, reviewerID int64, status domain.DocumentStatus, reason string) error {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":      string(status),
		"reviewer_id": reviewerID,
		"reviewed_at": now,
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&businessDocumentModel{}).
		Where("id = ?", docID).
		Updates(updates).Error
}
