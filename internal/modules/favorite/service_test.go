package favorite

import (
	"context"
	"testing"

	"juanride/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, vehicleID int64) error {
	args := m.Called(ctx, userID, vehicleID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, vehicleID int64) error {
	args := m.Called(ctx, userID, vehicleID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

type MockVehicleReader struct {
	mock.Mock
}

func (m *MockVehicleReader) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func TestAdd_ChecksVehicleExists(t *testing.T) {
	favorites := new(MockFavoriteRepository)
	vehicles := new(MockVehicleReader)
	svc := NewService(favorites, vehicles)

	vehicles.On("GetByID", mock.Anything, int64(10)).Return(&domain.Vehicle{ID: 10}, nil)
	favorites.On("Add", mock.Anything, int64(7), int64(10)).Return(nil)

	err := svc.Add(context.Background(), 7, 10)
	assert.NoError(t, err)
	favorites.AssertExpectations(t)
}

func TestAdd_UnknownVehicle(t *testing.T) {
	vehicles := new(MockVehicleReader)
	svc := NewService(new(MockFavoriteRepository), vehicles)

	vehicles.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Add(context.Background(), 7, 404)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestList_ReturnsUserFavorites(t *testing.T) {
	favorites := new(MockFavoriteRepository)
	svc := NewService(favorites, new(MockVehicleReader))

	favorites.On("ListByUser", mock.Anything, int64(7)).
		Return([]domain.Favorite{{UserID: 7, VehicleID: 10}}, nil)

	items, err := svc.List(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
