package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"juanride/internal/domain"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

type maintenanceLogModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	VehicleID   int64     `gorm:"column:vehicle_id;index"`
	Description *string   `gorm:"column:description"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
	Applied     bool      `gorm:"column:applied"`
	Released    bool      `gorm:"column:released"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (maintenanceLogModel) TableName() string { return "maintenance_logs" }

func toDomainMaintenance(m maintenanceLogModel) *domain.MaintenanceLog {
	var description string
	if m.Description != nil {
		description = *m.Description
	}
	return &domain.MaintenanceLog{
		ID:          m.ID,
		VehicleID:   m.VehicleID,
		Description: description,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Applied:     m.Applied,
		Released:    m.Released,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *MaintenanceRepository) Create(ctx context.Context, l *domain.MaintenanceLog) error {
	var description *string
	if l.Description != "" {
		v := l.Description
		description = &v
	}
	m := maintenanceLogModel{
		VehicleID:   l.VehicleID,
		Description: description,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainMaintenance(m)
	return nil
}

func (r *MaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.MaintenanceLog, error) {
	var rows []maintenanceLogModel
	tx := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).Order("start_date DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.MaintenanceLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMaintenance(m))
	}
	return out, nil
}

// DueToApply returns windows that have started but were not applied yet.
func (r *MaintenanceRepository) DueToApply(ctx context.Context, now time.Time) ([]domain.MaintenanceLog, error) {
	var rows []maintenanceLogModel
	tx := r.db.WithContext(ctx).
		Where("applied = ? AND start_date <= ?", false, now).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.MaintenanceLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMaintenance(m))
	}
	return out, nil
}

// DueToRelease returns applied windows whose end has passed.
func (r *MaintenanceRepository) DueToRelease(ctx context.Context, now time.Time) ([]domain.MaintenanceLog, error) {
	var rows []maintenanceLogModel
	tx := r.db.WithContext(ctx).
		Where("applied = ? AND released = ? AND end_date <= ?", true, false, now).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.MaintenanceLog, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMaintenance(m))
	}
	return out, nil
}

// ApplyWindow flips the vehicle into maintenance and marks the window applied
// inside one transaction.
func (r *MaintenanceRepository) ApplyWindow(ctx context.Context, logID, vehicleID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&maintenanceLogModel{}).Where("id = ?", logID).
			Update("applied", true).Error; err != nil {
			return err
		}
		return tx.Model(&vehicleModel{}).Where("id = ?", vehicleID).
			Update("status", string(domain.VehicleMaintenance)).Error
	})
}

// ReleaseWindow returns the vehicle to available and marks the window released.
func (r *MaintenanceRepository) ReleaseWindow(ctx context.Context, logID, vehicleID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&maintenanceLogModel{}).Where("id = ?", logID).
			Update("released", true).Error; err != nil {
			return err
		}
		return tx.Model(&vehicleModel{}).Where("id = ? AND status = ?", vehicleID, string(domain.VehicleMaintenance)).
			Update("status", string(domain.VehicleAvailable)).Error
	})
}
