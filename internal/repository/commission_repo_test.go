package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"juanride/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&bookingModel{}, &commissionModel{}))
	return db
}

// Two creation attempts for the same booking must leave exactly one row: the
// unique index plus ON CONFLICT DO NOTHING closes the check-then-insert race.
func TestCommissionRepository_CreateIfAbsent_Idempotent(t *testing.T) {
	repo := NewCommissionRepository(newTestDB(t))
	ctx := context.Background()

	c1 := &domain.Commission{
		BookingID:        42,
		OwnerID:          7,
		RentalAmount:     3000,
		CommissionAmount: 300,
		PaymentMethod:    domain.MethodGCash,
		Status:           domain.CommissionPending,
	}
	created, err := repo.CreateIfAbsent(ctx, c1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, c1.ID)

	c2 := &domain.Commission{
		BookingID:        42,
		OwnerID:          7,
		RentalAmount:     3000,
		CommissionAmount: 300,
		PaymentMethod:    domain.MethodGCash,
		Status:           domain.CommissionPending,
	}
	created, err = repo.CreateIfAbsent(ctx, c2)
	require.NoError(t, err)
	assert.False(t, created, "second insert for the same booking must be a no-op")

	got, err := repo.GetByBookingID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, c1.ID, got.ID)
	assert.Equal(t, 300.0, got.CommissionAmount)
}

func TestCommissionRepository_ListBookingsMissingCommission(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommissionRepository(db)
	ctx := context.Background()

	seed := []bookingModel{
		{ID: 1, VehicleID: 1, RenterID: 2, OwnerID: 3, Status: string(domain.BookingCompleted), TotalPrice: 1500},
		{ID: 2, VehicleID: 1, RenterID: 2, OwnerID: 3, Status: string(domain.BookingConfirmed), TotalPrice: 2000},
		{ID: 3, VehicleID: 1, RenterID: 2, OwnerID: 3, Status: string(domain.BookingPending), TotalPrice: 900},
		{ID: 4, VehicleID: 1, RenterID: 2, OwnerID: 3, Status: string(domain.BookingCancelled), TotalPrice: 700},
	}
	require.NoError(t, db.Create(&seed).Error)

	// booking 1 already has its commission
	_, err := repo.CreateIfAbsent(ctx, &domain.Commission{
		BookingID: 1, OwnerID: 3, RentalAmount: 1500, CommissionAmount: 150,
		PaymentMethod: domain.MethodCash, Status: domain.CommissionPending,
	})
	require.NoError(t, err)

	missing, err := repo.ListBookingsMissingCommission(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, int64(2), missing[0].ID)
}

func TestSettingRepository_CommissionRate(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.AutoMigrate(&systemSettingModel{}))
	repo := NewSettingRepository(db)
	ctx := context.Background()

	rate, err := repo.CommissionRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCommissionRate, rate, "missing setting falls back to default")

	require.NoError(t, repo.Set(ctx, domain.SettingCommissionRate, "0.08"))
	rate, err = repo.CommissionRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.08, rate)

	require.NoError(t, repo.Set(ctx, domain.SettingCommissionRate, "not-a-number"))
	rate, err = repo.CommissionRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCommissionRate, rate, "malformed setting falls back to default")
}
