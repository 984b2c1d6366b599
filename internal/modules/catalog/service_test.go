package catalog

import (
	"context"
	"testing"
	"time"

	"juanride/internal/domain"
	"juanride/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	if v != nil && args.Error(0) == nil {
		v.ID = 10
	}
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) SearchBookable(ctx context.Context, p repository.SearchParams) ([]domain.Vehicle, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) UpdateStatus(ctx context.Context, vehicleID int64, status domain.VehicleStatus) error {
	args := m.Called(ctx, vehicleID, status)
	return args.Error(0)
}

func TestCreate_StartsInApprovalQueue(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, nil, nil, nil)

	vehicles.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.ApprovalStatus == domain.ApprovalPending && v.Status == domain.VehicleAvailable
	})).Return(nil)

	v, err := svc.Create(context.Background(), 5, CreateVehicleRequest{
		Make: "Honda", Model: "Click 125i", Year: 2022, PlateNumber: "ABC123",
		PricePerDay: 500, Location: "Cebu",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(5), v.OwnerID)
	assert.False(t, v.Bookable(), "new listings must not be bookable before approval")
	vehicles.AssertExpectations(t)
}

func TestSetStatus_OwnerToggle(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, nil, nil, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5, Status: domain.VehicleAvailable}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)
	vehicles.On("UpdateStatus", mock.Anything, int64(10), domain.VehicleInactive).Return(nil)

	got, err := svc.SetStatus(context.Background(), 10, 5, domain.VehicleInactive)
	assert.NoError(t, err)
	assert.Equal(t, domain.VehicleInactive, got.Status)
}

func TestSetStatus_RejectsWhileRented(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, nil, nil, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5, Status: domain.VehicleRented}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

	_, err := svc.SetStatus(context.Background(), 10, 5, domain.VehicleAvailable)
	assert.ErrorIs(t, err, ErrVehicleRented)
}

func TestSetStatus_CannotSetRentedByHand(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, nil, nil, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5, Status: domain.VehicleAvailable}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

	_, err := svc.SetStatus(context.Background(), 10, 5, domain.VehicleRented)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_OtherOwnerForbidden(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, nil, nil, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

	_, err := svc.Update(context.Background(), 10, 6, UpdateVehicleRequest{Location: "Manila"})
	assert.ErrorIs(t, err, ErrNotOwner)
}

type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, l *domain.MaintenanceLog) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockMaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.MaintenanceLog, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.MaintenanceLog), args.Error(1)
}

type MockAvailabilityChecker struct {
	mock.Mock
}

func (m *MockAvailabilityChecker) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	args := m.Called(ctx, vehicleID, start, end)
	return args.Bool(0), args.Error(1)
}

func TestScheduleMaintenance_CreatesWindow(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	maintenance := new(MockMaintenanceRepository)
	bookings := new(MockAvailabilityChecker)
	svc := NewService(vehicles, maintenance, bookings, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)
	bookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(true, nil)
	maintenance.On("Create", mock.Anything, mock.MatchedBy(func(l *domain.MaintenanceLog) bool {
		return l.VehicleID == 10 && l.EndDate.After(l.StartDate)
	})).Return(nil)

	l, err := svc.ScheduleMaintenance(context.Background(), 10, 5, ScheduleMaintenanceRequest{
		Description: "oil change", StartDate: "2026-09-10", EndDate: "2026-09-12",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), l.VehicleID)
	maintenance.AssertExpectations(t)
}

func TestScheduleMaintenance_RejectsBookingOverlap(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	bookings := new(MockAvailabilityChecker)
	svc := NewService(vehicles, new(MockMaintenanceRepository), bookings, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)
	bookings.On("CheckAvailability", mock.Anything, int64(10), mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.ScheduleMaintenance(context.Background(), 10, 5, ScheduleMaintenanceRequest{
		StartDate: "2026-09-10", EndDate: "2026-09-12",
	})
	assert.ErrorIs(t, err, ErrWindowConflict)
}

func TestScheduleMaintenance_RejectsBackwardsWindow(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, new(MockMaintenanceRepository), new(MockAvailabilityChecker), nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)

	_, err := svc.ScheduleMaintenance(context.Background(), 10, 5, ScheduleMaintenanceRequest{
		StartDate: "2026-09-12", EndDate: "2026-09-10",
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestUpdate_RejectedListingResubmits(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, nil, nil, nil)

	v := &domain.Vehicle{ID: 10, OwnerID: 5, ApprovalStatus: domain.ApprovalRejected, RejectionReason: "blurry photos"}
	vehicles.On("GetByID", mock.Anything, int64(10)).Return(v, nil)
	vehicles.On("Update", mock.Anything, mock.MatchedBy(func(v *domain.Vehicle) bool {
		return v.ApprovalStatus == domain.ApprovalPending && v.RejectionReason == ""
	})).Return(nil)

	got, err := svc.Update(context.Background(), 10, 5, UpdateVehicleRequest{Description: "clearer photos coming"})
	assert.NoError(t, err)
	assert.Equal(t, domain.ApprovalPending, got.ApprovalStatus)
}
