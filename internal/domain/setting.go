package domain

import "time"

// SystemSetting is a key/value row for platform-wide knobs.
// Known keys: commission_rate.
type SystemSetting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingCommissionRate = "commission_rate"
