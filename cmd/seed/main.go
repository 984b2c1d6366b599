package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"juanride/internal/database"
	"juanride/internal/domain"
	"juanride/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "juanride.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	// Cleanup old data in FK-safe order.
	log.Println("Cleaning old data...")
	for _, table := range []string{
		"notifications", "reviews", "favorites", "commissions", "payments",
		"maintenance_logs", "support_tickets", "id_documents", "business_documents",
		"bookings", "vehicles", "users", "system_settings",
	} {
		db.Exec("DELETE FROM " + table)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	vehicles := repository.NewVehicleRepository(db)
	bookings := repository.NewBookingRepository(db)
	settings := repository.NewSettingRepository(db)

	if err := settings.Set(ctx, domain.SettingCommissionRate, "0.10"); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating users...")
	admin := seedUser(ctx, users, "admin@juanride.ph", "admin123", domain.RoleAdmin, "Ramon", "Santos")
	log.Printf("Admin created: %s / admin123", admin.Email)

	renters := []*domain.User{
		seedUser(ctx, users, "maria@gmail.com", "renter123", domain.RoleRenter, "Maria", "Dela Cruz"),
		seedUser(ctx, users, "jose@yahoo.com", "renter123", domain.RoleRenter, "Jose", "Reyes"),
		seedUser(ctx, users, "ana@gmail.com", "renter123", domain.RoleRenter, "Ana", "Bautista"),
	}

	owners := []*domain.User{
		seedUser(ctx, users, "carlo@juanride.ph", "owner123", domain.RoleOwner, "Carlo", "Mendoza"),
		seedUser(ctx, users, "liza@juanride.ph", "owner123", domain.RoleOwner, "Liza", "Garcia"),
	}

	// One applicant still waiting for admin approval.
	seedUser(ctx, users, "pending@juanride.ph", "owner123", domain.RolePending, "Paolo", "Ramos")

	log.Println("Creating vehicles...")
	models := []struct {
		make, model, plate, location string
		year                         int
		price                        float64
	}{
		{"Honda", "Click 125i", "ABC 1234", "Cebu City", 2022, 500},
		{"Yamaha", "NMAX 155", "DEF 5678", "Cebu City", 2023, 700},
		{"Toyota", "Vios", "GHI 9012", "Manila", 2021, 1800},
		{"Mitsubishi", "Mirage G4", "JKL 3456", "Davao City", 2020, 1500},
	}

	var seeded []*domain.Vehicle
	for i, m := range models {
		v := &domain.Vehicle{
			OwnerID:        owners[i%len(owners)].ID,
			Make:           m.make,
			Model:          m.model,
			Year:           m.year,
			PlateNumber:    m.plate,
			Description:    fmt.Sprintf("%s %s, well maintained", m.make, m.model),
			PricePerDay:    m.price,
			Location:       m.location,
			ApprovalStatus: domain.ApprovalApproved,
			Status:         domain.VehicleAvailable,
		}
		if err := vehicles.Create(ctx, v); err != nil {
			log.Fatal(err)
		}
		seeded = append(seeded, v)
	}

	log.Println("Creating a completed booking...")
	start := time.Now().AddDate(0, 0, -10)
	end := start.AddDate(0, 0, 3)
	b := &domain.Booking{
		VehicleID:  seeded[0].ID,
		RenterID:   renters[0].ID,
		OwnerID:    seeded[0].OwnerID,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: 3 * seeded[0].PricePerDay,
		Status:     domain.BookingPending,
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatal(err)
	}
	if err := bookings.UpdateStatus(ctx, b.ID, domain.BookingCompleted); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
}

func seedUser(ctx context.Context, users *repository.UserRepository, email, password string, role domain.UserRole, firstName, lastName string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		FirstName:          firstName,
		LastName:           lastName,
		VerificationStatus: domain.VerificationVerified,
		IsActive:           true,
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal(err)
	}
	return u
}
