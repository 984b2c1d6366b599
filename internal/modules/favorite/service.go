package favorite

import (
	"context"
	"errors"

	"juanride/internal/domain"

	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type FavoriteRepository interface {
	Add(ctx context.Context, userID, vehicleID int64) error
	Remove(ctx context.Context, userID, vehicleID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
}

type VehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type Service struct {
	favorites FavoriteRepository
	vehicles  VehicleReader
}

func NewService(favorites FavoriteRepository, vehicles VehicleReader) *Service {
	return &Service{favorites: favorites, vehicles: vehicles}
}

// Add favorites a vehicle. Adding the same vehicle twice is a no-op thanks
// to the unique (user_id, vehicle_id) index.
func (s *Service) Add(ctx context.Context, userID, vehicleID int64) error {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVehicleNotFound
		}
		return err
	}
	return s.favorites.Add(ctx, userID, vehicleID)
}

func (s *Service) Remove(ctx context.Context, userID, vehicleID int64) error {
	return s.favorites.Remove(ctx, userID, vehicleID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}
