package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"juanride/internal/config"
	"juanride/internal/database"
	"juanride/internal/jobs"
	"juanride/internal/modules/commission"
	"juanride/internal/modules/notification"
	"juanride/internal/repository"
	"juanride/internal/scheduler"
)

func main() {
	runOnce := flag.String("run-once", "", "Run a single job and exit (expire-pending, apply-maintenance, backfill-commissions)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// The cron binary has no websocket clients; notifications are stored
	// and emailed only.
	mailer := notification.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.EmailFromName)
	notificationService := notification.NewService(notificationRepo, userRepo, notification.NewHub(), mailer)
	commissionService := commission.NewService(commissionRepo, settingRepo)

	runner := jobs.NewRunner(bookingRepo, maintenanceRepo, commissionService, notificationService, cfg)

	if *runOnce != "" {
		switch *runOnce {
		case "expire-pending":
			runner.ExpirePendingBookings()
		case "apply-maintenance":
			runner.ApplyMaintenanceWindows()
		case "backfill-commissions":
			runner.BackfillCommissions()
		default:
			log.Printf("level=error msg=unknown job job=%s", *runOnce)
			os.Exit(1)
		}
		return
	}

	s := scheduler.New(runner)
	s.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	s.Stop()
}
