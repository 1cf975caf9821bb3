package scheduler

import (
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily background sweeps on cron schedules
type Scheduler struct {
	cron    *cron.Cron
	sweeper *Sweeper
}

func New(sweeper *Sweeper) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		sweeper: sweeper,
	}
}

// Start registers the sweeps and starts the cron loop.
// Appointment reminders go out every morning at 08:00, the
// subscription expiry sweep runs at midnight.
func (s *Scheduler) Start() error {
	log.Println("⏰ Starting reminder scheduler...")

	if _, err := s.cron.AddFunc("0 8 * * *", s.sweeper.SendAppointmentReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 * * *", s.sweeper.SweepExpiredSubscriptions); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Reminder scheduler started")
	return nil
}

// Stop stops the cron loop
func (s *Scheduler) Stop() {
	log.Println("⏰ Stopping reminder scheduler...")
	s.cron.Stop()
	log.Println("✅ Reminder scheduler stopped")
}
