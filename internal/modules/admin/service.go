package admin

import (
	"context"
	"errors"
	"strconv"

	"juanride/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users         UserRepository
	vehicles      VehicleRepository
	commissions   CommissionStats
	settings      SettingStore
	notifications NotificationSender
}

func NewService(users UserRepository, vehicles VehicleRepository, commissions CommissionStats, settings SettingStore, notifications NotificationSender) *Service {
	return &Service{
		users:         users,
		vehicles:      vehicles,
		commissions:   commissions,
		settings:      settings,
		notifications: notifications,
	}
}

func (s *Service) ListUsers(ctx context.Context, role string, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, role, limit, offset)
}

// UpdateRole is the only path that mutates a user's role. Owner applicants
// register as pending and are promoted here once their documents check out.
func (s *Service) UpdateRole(ctx context.Context, userID int64, role domain.UserRole) error {
	switch role {
	case domain.RoleRenter, domain.RoleOwner, domain.RoleAdmin:
	default:
		return ErrInvalidRole
	}

	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}
	return s.users.UpdateRole(ctx, userID, role)
}

func (s *Service) SetActive(ctx context.Context, userID int64, active bool) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}
	return s.users.SetActive(ctx, userID, active)
}

func (s *Service) PendingVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.ListPendingApproval(ctx)
}

// ReviewVehicle approves or rejects a listed vehicle. A rejection must carry
// a reason so the owner knows what to fix. Decisions are final per listing;
// owners resubmit by editing the vehicle, which resets it to pending.
func (s *Service) ReviewVehicle(ctx context.Context, vehicleID int64, approve bool, reason string) error {
	if !approve && reason == "" {
		return ErrReasonRequired
	}

	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	if v.ApprovalStatus != domain.ApprovalPending {
		return ErrAlreadyDecided
	}

	status := domain.ApprovalApproved
	if !approve {
		status = domain.ApprovalRejected
	}
	if err := s.vehicles.UpdateApproval(ctx, vehicleID, status, reason); err != nil {
		return err
	}

	_ = s.notifications.NotifyVehicleReviewed(ctx, v.OwnerID, vehicleID, approve, reason)
	return nil
}

// DashboardStats summarizes platform earnings for the admin overview.
type DashboardStats struct {
	CommissionRate    float64 `json:"commission_rate"`
	PendingCommission float64 `json:"pending_commission"`
	PaidCommission    float64 `json:"paid_commission"`
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	rate, err := s.commissions.Rate(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.commissions.TotalByStatus(ctx, domain.CommissionPending)
	if err != nil {
		return nil, err
	}
	paid, err := s.commissions.TotalByStatus(ctx, domain.CommissionPaid)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		CommissionRate:    rate,
		PendingCommission: pending,
		PaidCommission:    paid,
	}, nil
}

// SetCommissionRate changes the platform rate for future bookings only.
// Commissions already recorded keep the amount they were created with.
func (s *Service) SetCommissionRate(ctx context.Context, rate float64) error {
	if rate < 0 || rate > 1 {
		return ErrValidation
	}
	return s.settings.Set(ctx, domain.SettingCommissionRate, strconv.FormatFloat(rate, 'f', -1, 64))
}

func (s *Service) getUser(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
