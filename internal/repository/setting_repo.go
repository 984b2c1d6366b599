package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"juanride/internal/domain"
)

// DefaultCommissionRate applies when system_settings has no commission_rate
// row. The backfill tool's historical 10% was chosen as canonical over the
// 5% dashboard figure.
const DefaultCommissionRate = 0.10

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

type systemSettingModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (systemSettingModel) TableName() string { return "system_settings" }

func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var m systemSettingModel
	tx := r.db.WithContext(ctx).Where("key = ?", key).First(&m)
	if tx.Error != nil {
		return "", tx.Error
	}
	return m.Value, nil
}

func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	m := systemSettingModel{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&m).Error
}

// CommissionRate reads the canonical platform rate, falling back to the
// default when the setting is missing or malformed.
func (r *SettingRepository) CommissionRate(ctx context.Context) (float64, error) {
	raw, err := r.Get(ctx, domain.SettingCommissionRate)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DefaultCommissionRate, nil
	}
	if err != nil {
		return 0, err
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || rate <= 0 || rate >= 1 {
		return DefaultCommissionRate, nil
	}
	return rate, nil
}
