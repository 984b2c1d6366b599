package jobs

import (
	"context"
	"log"
	"time"

	"juanride/internal/config"
	"juanride/internal/domain"
)

const backfillBatchSize = 200

// Cancellation reason written on bookings the scheduler expires.
const expiredReason = "expired: no payment received"

type BookingStore interface {
	ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	CancelWithReason(ctx context.Context, bookingID int64, reason string) error
}

type MaintenanceStore interface {
	DueToApply(ctx context.Context, now time.Time) ([]domain.MaintenanceLog, error)
	DueToRelease(ctx context.Context, now time.Time) ([]domain.MaintenanceLog, error)
	ApplyWindow(ctx context.Context, logID, vehicleID int64) error
	ReleaseWindow(ctx context.Context, logID, vehicleID int64) error
}

type CommissionBackfiller interface {
	Backfill(ctx context.Context, limit int) (int, error)
}

type NotificationSender interface {
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string) error
}

// Runner coordinates the scheduled jobs.
type Runner struct {
	bookings      BookingStore
	maintenance   MaintenanceStore
	commissions   CommissionBackfiller
	notifications NotificationSender
	config        *config.Config
}

func NewRunner(bookings BookingStore, maintenance MaintenanceStore, commissions CommissionBackfiller, notifications NotificationSender, cfg *config.Config) *Runner {
	return &Runner{
		bookings:      bookings,
		maintenance:   maintenance,
		commissions:   commissions,
		notifications: notifications,
		config:        cfg,
	}
}

func (r *Runner) Config() *config.Config {
	return r.config
}

// runWithRecovery wraps job execution with panic recovery so one bad run
// never takes the scheduler down.
func (r *Runner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("level=error msg=job panicked job=%s panic=%v", jobName, rec)
		}
	}()

	start := time.Now()
	log.Printf("level=info msg=job started job=%s", jobName)
	jobFunc(context.Background())
	log.Printf("level=info msg=job finished job=%s duration=%s", jobName, time.Since(start))
}

// ExpirePendingBookings cancels bookings that sat unpaid past the pending
// TTL, freeing their dates for other renters.
func (r *Runner) ExpirePendingBookings() {
	r.runWithRecovery("ExpirePendingBookings", func(ctx context.Context) {
		cutoff := time.Now().Add(-r.config.PendingBookingTTL)

		stale, err := r.bookings.ListStalePending(ctx, cutoff)
		if err != nil {
			log.Printf("level=error msg=stale booking scan failed error=%v", err)
			return
		}

		expired := 0
		for _, b := range stale {
			if err := r.bookings.CancelWithReason(ctx, b.ID, expiredReason); err != nil {
				log.Printf("level=error msg=booking expiry failed booking_id=%d error=%v", b.ID, err)
				continue
			}
			expired++
			_ = r.notifications.NotifyBookingCancelled(ctx, b.RenterID, b.ID, expiredReason)
		}

		if expired > 0 {
			log.Printf("level=info msg=expired pending bookings count=%d", expired)
		}
	})
}

// ApplyMaintenanceWindows flips vehicles into maintenance at window start
// and back to available at window end.
func (r *Runner) ApplyMaintenanceWindows() {
	r.runWithRecovery("ApplyMaintenanceWindows", func(ctx context.Context) {
		now := time.Now()

		due, err := r.maintenance.DueToApply(ctx, now)
		if err != nil {
			log.Printf("level=error msg=maintenance apply scan failed error=%v", err)
			return
		}
		for _, l := range due {
			if err := r.maintenance.ApplyWindow(ctx, l.ID, l.VehicleID); err != nil {
				log.Printf("level=error msg=maintenance apply failed log_id=%d vehicle_id=%d error=%v", l.ID, l.VehicleID, err)
			}
		}

		done, err := r.maintenance.DueToRelease(ctx, now)
		if err != nil {
			log.Printf("level=error msg=maintenance release scan failed error=%v", err)
			return
		}
		for _, l := range done {
			if err := r.maintenance.ReleaseWindow(ctx, l.ID, l.VehicleID); err != nil {
				log.Printf("level=error msg=maintenance release failed log_id=%d vehicle_id=%d error=%v", l.ID, l.VehicleID, err)
			}
		}

		if len(due) > 0 || len(done) > 0 {
			log.Printf("level=info msg=maintenance windows processed applied=%d released=%d", len(due), len(done))
		}
	})
}

// BackfillCommissions creates commission rows for finished bookings that
// are missing one. Normal operation creates them at return confirmation,
// so this is a safety net for crashes in that window.
func (r *Runner) BackfillCommissions() {
	r.runWithRecovery("BackfillCommissions", func(ctx context.Context) {
		created, err := r.commissions.Backfill(ctx, backfillBatchSize)
		if err != nil {
			log.Printf("level=error msg=commission backfill failed error=%v", err)
			return
		}
		if created > 0 {
			log.Printf("level=info msg=commissions backfilled count=%d", created)
		}
	})
}
