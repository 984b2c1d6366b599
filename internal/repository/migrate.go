package repository

import (
	"strings"

	"gorm.io/gorm"

	"juanride/internal/domain"
)

// Migrate creates or updates the schema for every table the repositories
// own, then installs the constraints gorm cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&userModel{},
		&vehicleModel{},
		&bookingModel{},
		&paymentModel{},
		&commissionModel{},
		&identityDocumentModel{},
		&businessDocumentModel{},
		&notificationModel{},
		&supportTicketModel{},
		&reviewModel{},
		&maintenanceLogModel{},
		&domain.Favorite{},
		&systemSettingModel{},
	); err != nil {
		return err
	}

	// Overlapping confirmed bookings are rejected at the schema level.
	// btree_gist and EXCLUDE are postgres-only; sqlite development setups
	// rely on the service-level availability check instead.
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return err
		}
		if err := db.Exec(`
			ALTER TABLE bookings
			ADD CONSTRAINT idx_no_double_booking
			EXCLUDE USING gist (
				vehicle_id WITH =,
				daterange(start_date::date, end_date::date) WITH &&
			)
			WHERE (status IN ('pending', 'confirmed', 'active'))
		`).Error; err != nil && !isDuplicateConstraint(err) {
			return err
		}
	}

	return nil
}

func isDuplicateConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "already exists")
}
