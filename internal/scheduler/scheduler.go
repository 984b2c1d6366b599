package scheduler

import (
	"log"
	"time"

	"juanride/internal/jobs"

	"github.com/robfig/cron/v3"
)

// Scheduler wires the job runner into cron.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.Runner
}

func New(runner *jobs.Runner) *Scheduler {
	// Specs use seconds precision and UTC.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c, jobs: runner}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.ExpirePendingBookings, s.jobs.ExpirePendingBookings); err != nil {
		log.Printf("level=error msg=failed to register ExpirePendingBookings error=%v", err)
	}
	if _, err := s.cron.AddFunc(cfg.ApplyMaintenance, s.jobs.ApplyMaintenanceWindows); err != nil {
		log.Printf("level=error msg=failed to register ApplyMaintenanceWindows error=%v", err)
	}
	if _, err := s.cron.AddFunc(cfg.BackfillCommissions, s.jobs.BackfillCommissions); err != nil {
		log.Printf("level=error msg=failed to register BackfillCommissions error=%v", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("level=info msg=cron scheduler started jobs=%d", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Printf("level=info msg=cron scheduler stopped")
}
