package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"juanride/internal/domain"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type vehicleModel struct {
	ID              int64     `gorm:"column:id;primaryKey"`
	OwnerID         int64     `gorm:"column:owner_id;index"`
	Make            string    `gorm:"column:make"`
	Model           string    `gorm:"column:model"`
	Year            int       `gorm:"column:year"`
	PlateNumber     string    `gorm:"column:plate_number"`
	Description     *string   `gorm:"column:description"`
	PricePerDay     float64   `gorm:"column:price_per_day"`
	Location        string    `gorm:"column:location"`
	ApprovalStatus  string    `gorm:"column:approval_status"`
	Status          string    `gorm:"column:status"`
	RejectionReason *string   `gorm:"column:rejection_reason"`
	ImageURLs       *string   `gorm:"column:image_urls"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (vehicleModel) TableName() string { return "vehicles" }

func toDomainVehicle(m vehicleModel) *domain.Vehicle {
	var description, reason string
	if m.Description != nil {
		description = *m.Description
	}
	if m.RejectionReason != nil {
		reason = *m.RejectionReason
	}
	var urls []string
	if m.ImageURLs != nil && *m.ImageURLs != "" {
		_ = json.Unmarshal([]byte(*m.ImageURLs), &urls)
	}

	return &domain.Vehicle{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Make:            m.Make,
		Model:           m.Model,
		Year:            m.Year,
		PlateNumber:     m.PlateNumber,
		Description:     description,
		PricePerDay:     m.PricePerDay,
		Location:        m.Location,
		ApprovalStatus:  domain.ApprovalStatus(m.ApprovalStatus),
		Status:          domain.VehicleStatus(m.Status),
		RejectionReason: reason,
		ImageURLs:       urls,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toVehicleModel(v *domain.Vehicle) vehicleModel {
	var description, reason *string
	if v.Description != "" {
		s := v.Description
		description = &s
	}
	if v.RejectionReason != "" {
		s := v.RejectionReason
		reason = &s
	}
	var urls *string
	if len(v.ImageURLs) > 0 {
		raw, _ := json.Marshal(v.ImageURLs)
		s := string(raw)
		urls = &s
	}

	return vehicleModel{
		ID:              v.ID,
		OwnerID:         v.OwnerID,
		Make:            v.Make,
		Model:           v.Model,
		Year:            v.Year,
		PlateNumber:     v.PlateNumber,
		Description:     description,
		PricePerDay:     v.PricePerDay,
		Location:        v.Location,
		ApprovalStatus:  string(v.ApprovalStatus),
		Status:          string(v.Status),
		RejectionReason: reason,
		ImageURLs:       urls,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	m := toVehicleModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVehicle(m)
	return nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var m vehicleModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVehicle(m), nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	m := toVehicleModel(v)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVehicle(m)
	return nil
}

// SearchParams narrows the public vehicle listing.
type SearchParams struct {
	Location string
	MaxPrice float64
	Limit    int
	Offset   int
}

// SearchBookable lists approved, available vehicles for public browse.
func (r *VehicleRepository) SearchBookable(ctx context.Context, p SearchParams) ([]domain.Vehicle, error) {
	q := r.db.WithContext(ctx).Model(&vehicleModel{}).
		Where("approval_status = ? AND status = ?", string(domain.ApprovalApproved), string(domain.VehicleAvailable))
	if p.Location != "" {
		q = q.Where("location LIKE ?", "%"+p.Location+"%")
	}
	if p.MaxPrice > 0 {
		q = q.Where("price_per_day <= ?", p.MaxPrice)
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}

	var rows []vehicleModel
	if err := q.Order("created_at DESC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Vehicle, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	var rows []vehicleModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Vehicle, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) ListPendingApproval(ctx context.Context) ([]domain.Vehicle, error) {
	var rows []vehicleModel
	tx := r.db.WithContext(ctx).
		Where("approval_status = ?", string(domain.ApprovalPending)).
		Order("created_at ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Vehicle, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) UpdateApproval(ctx context.Context, vehicleID int64, status domain.ApprovalStatus, reason string) error {
	updates := map[string]any{"approval_status": string(status)}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	return r.db.WithContext(ctx).Model(&vehicleModel{}).
		Where("id = ?", vehicleID).
		Updates(updates).Error
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, vehicleID int64, status domain.VehicleStatus) error {
	return r.db.WithContext(ctx).Model(&vehicleModel{}).
		Where("id = ?", vehicleID).
		Update("status", string(status)).Error
}
