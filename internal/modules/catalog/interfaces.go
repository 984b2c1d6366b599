package catalog

import (
	"context"
	"time"

	"juanride/internal/domain"
	"juanride/internal/repository"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	SearchBookable(ctx context.Context, p repository.SearchParams) ([]domain.Vehicle, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error)
	UpdateStatus(ctx context.Context, vehicleID int64, status domain.VehicleStatus) error
}

type MaintenanceRepository interface {
	Create(ctx context.Context, l *domain.MaintenanceLog) error
	ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.MaintenanceLog, error)
}

// AvailabilityChecker reports whether a vehicle has no booking overlapping
// the given window.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error)
}
