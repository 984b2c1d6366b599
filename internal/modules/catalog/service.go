package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"juanride/internal/domain"
	"juanride/internal/repository"
	"juanride/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	vehicles    VehicleRepository
	maintenance MaintenanceRepository
	bookings    AvailabilityChecker
	store       storage.Storage
}

func NewService(vehicles VehicleRepository, maintenance MaintenanceRepository, bookings AvailabilityChecker, store storage.Storage) *Service {
	return &Service{vehicles: vehicles, maintenance: maintenance, bookings: bookings, store: store}
}

// Search lists bookable vehicles for public browse. Only approved and
// available listings ever surface here.
func (s *Service) Search(ctx context.Context, p repository.SearchParams) ([]domain.Vehicle, error) {
	return s.vehicles.SearchBookable(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Create opens a new listing in the approval queue. Nothing is bookable
// until an admin approves it.
func (s *Service) Create(ctx context.Context, ownerID int64, req CreateVehicleRequest) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		OwnerID:        ownerID,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		PlateNumber:    req.PlateNumber,
		Description:    req.Description,
		PricePerDay:    req.PricePerDay,
		Location:       req.Location,
		ApprovalStatus: domain.ApprovalPending,
		Status:         domain.VehicleAvailable,
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64) ([]domain.Vehicle, error) {
	return s.vehicles.ListByOwner(ctx, ownerID)
}

func (s *Service) Update(ctx context.Context, vehicleID, ownerID int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	v, err := s.ownedVehicle(ctx, vehicleID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		v.Description = req.Description
	}
	if req.PricePerDay > 0 {
		v.PricePerDay = req.PricePerDay
	}
	if req.Location != "" {
		v.Location = req.Location
	}

	// Editing a rejected listing resubmits it for review.
	if v.ApprovalStatus == domain.ApprovalRejected {
		v.ApprovalStatus = domain.ApprovalPending
		v.RejectionReason = ""
	}

	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// SetStatus lets the owner toggle availability. Rented is poller-owned
// state and cannot be set or cleared by hand.
func (s *Service) SetStatus(ctx context.Context, vehicleID, ownerID int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
	v, err := s.ownedVehicle(ctx, vehicleID, ownerID)
	if err != nil {
		return nil, err
	}
	if v.Status == domain.VehicleRented {
		return nil, ErrVehicleRented
	}
	if status == domain.VehicleRented {
		return nil, ErrValidation
	}

	if err := s.vehicles.UpdateStatus(ctx, v.ID, status); err != nil {
		return nil, err
	}
	v.Status = status
	return v, nil
}

// AddImage uploads a vehicle photo to the public bucket and appends its URL
// to the listing.
func (s *Service) AddImage(ctx context.Context, vehicleID, ownerID int64, body io.Reader, contentType string) (*domain.Vehicle, error) {
	v, err := s.ownedVehicle(ctx, vehicleID, ownerID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("vehicles/%d/%d-%s", v.ID, time.Now().Unix(), uuid.NewString())
	if _, err := s.store.Upload(ctx, storage.BucketVehicleImages, key, body, contentType); err != nil {
		return nil, err
	}

	v.ImageURLs = append(v.ImageURLs, s.store.PublicURL(storage.BucketVehicleImages, key))
	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ScheduleMaintenance records an out-of-service window. The cron scheduler
// flips the vehicle to maintenance at the start and back to available at
// the end, so future windows need no manual status toggling.
func (s *Service) ScheduleMaintenance(ctx context.Context, vehicleID, ownerID int64, req ScheduleMaintenanceRequest) (*domain.MaintenanceLog, error) {
	v, err := s.ownedVehicle(ctx, vehicleID, ownerID)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}

	// A window cannot shadow existing bookings.
	free, err := s.bookings.CheckAvailability(ctx, v.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrWindowConflict
	}

	l := &domain.MaintenanceLog{
		VehicleID:   v.ID,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
	}
	if err := s.maintenance.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) ListMaintenance(ctx context.Context, vehicleID, ownerID int64) ([]domain.MaintenanceLog, error) {
	if _, err := s.ownedVehicle(ctx, vehicleID, ownerID); err != nil {
		return nil, err
	}
	return s.maintenance.ListByVehicle(ctx, vehicleID)
}

func (s *Service) ownedVehicle(ctx context.Context, vehicleID, ownerID int64) (*domain.Vehicle, error) {
	v, err := s.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return v, nil
}
