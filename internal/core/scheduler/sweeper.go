package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"gorm.io/gorm"
)

// Sweeper implements the background sweeps the scheduler triggers
type Sweeper struct {
	db    *gorm.DB
	bus   *events.Bus
	email *email.Service

	// now is swappable for tests
	now func() time.Time
}

func NewSweeper(db *gorm.DB, bus *events.Bus, emailSvc *email.Service) *Sweeper {
	return &Sweeper{
		db:    db,
		bus:   bus,
		email: emailSvc,
		now:   time.Now,
	}
}

// SendAppointmentReminders notifies every client about tomorrow's
// pending appointments and emails the visitors who left an address
func (s *Sweeper) SendAppointmentReminders() {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := s.db.Where("date >= ? AND date < ? AND status = ?", start, end, models.AppointmentPending).
		Find(&appointments).Error
	if err != nil {
		log.Printf("⚠️ reminder sweep failed: %v", err)
		return
	}

	log.Printf("⏰ Reminder sweep: %d appointment(s) tomorrow", len(appointments))

	for _, appt := range appointments {
		notification := &models.Notification{
			ClientID: appt.ClientID,
			Title:    "Appointment reminder",
			Body:     fmt.Sprintf("%s has an appointment tomorrow at %s", appt.Name, appt.Time),
		}
		if err := s.db.Create(notification).Error; err != nil {
			log.Printf("⚠️ failed to create reminder notification: %v", err)
			continue
		}

		s.bus.Publish(events.Event{
			Type:     events.TypeNotification,
			ClientID: appt.ClientID,
			Payload:  notification,
		})

		if appt.Email != "" && s.email.Enabled() {
			body := fmt.Sprintf(
				"<p>Hi %s,</p><p>This is a reminder of your appointment tomorrow at %s.</p>",
				appt.Name, appt.Time,
			)
			if err := s.email.SendEmail(appt.Email, "Appointment reminder", body); err != nil {
				log.Printf("⚠️ reminder email to %s failed: %v", appt.Email, err)
			}
		}
	}
}

// SweepExpiredSubscriptions deactivates subscriptions whose period has
// ended and notifies the affected clients
func (s *Sweeper) SweepExpiredSubscriptions() {
	var expired []models.Subscription
	err := s.db.Where("status = ? AND current_period_end IS NOT NULL AND current_period_end < ?",
		models.SubscriptionActive, s.now()).Find(&expired).Error
	if err != nil {
		log.Printf("⚠️ subscription expiry sweep failed: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	log.Printf("⏰ Expiry sweep: %d subscription(s) ended", len(expired))

	for _, sub := range expired {
		if err := s.db.Model(&models.Subscription{}).
			Where("id = ?", sub.ID).
			Update("status", models.SubscriptionInactive).Error; err != nil {
			log.Printf("⚠️ failed to deactivate subscription %s: %v", sub.ID, err)
			continue
		}

		notification := &models.Notification{
			ClientID: sub.ClientID,
			Title:    "Subscription expired",
			Body:     fmt.Sprintf("Your %s plan has expired. Renew to keep your assistant running.", sub.Plan),
		}
		if err := s.db.Create(notification).Error; err != nil {
			log.Printf("⚠️ failed to create expiry notification: %v", err)
			continue
		}

		s.bus.Publish(events.Event{
			Type:     events.TypeNotification,
			ClientID: sub.ClientID,
			Payload:  notification,
		})
	}
}
