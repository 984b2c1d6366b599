package admin

import (
	"context"

	"juanride/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, role string, limit, offset int) ([]domain.User, error)
	UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error
	SetActive(ctx context.Context, userID int64, active bool) error
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListPendingApproval(ctx context.Context) ([]domain.Vehicle, error)
	UpdateApproval(ctx context.Context, vehicleID int64, status domain.ApprovalStatus, reason string) error
}

// CommissionStats is the slice of the commission service the dashboard needs.
type CommissionStats interface {
	Rate(ctx context.Context) (float64, error)
	TotalByStatus(ctx context.Context, status domain.CommissionStatus) (float64, error)
}

type SettingStore interface {
	Set(ctx context.Context, key, value string) error
}

type NotificationSender interface {
	NotifyVehicleReviewed(ctx context.Context, ownerID, vehicleID int64, approved bool, reason string) error
}
