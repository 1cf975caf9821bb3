package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/shared/database"
	"gorm.io/gorm"
)

func newSweeperTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "sweeper-test.db")
	db, err := database.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.Client{}, &models.Appointment{}, &models.Subscription{}, &models.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func TestAppointmentRemindersOnlyForTomorrow(t *testing.T) {
	db := newSweeperTestDB(t)
	bus := events.NewBus()

	client := models.Client{Name: "Acme"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	now := time.Date(2026, 8, 29, 7, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)

	appointments := []models.Appointment{
		{ClientID: client.ID, Name: "Tomorrow", Date: tomorrow, Time: "10:00", Status: models.AppointmentPending},
		{ClientID: client.ID, Name: "Later", Date: nextWeek, Time: "10:00", Status: models.AppointmentPending},
		{ClientID: client.ID, Name: "Cancelled", Date: tomorrow, Time: "11:00", Status: models.AppointmentCancelled},
	}
	for i := range appointments {
		if err := db.Create(&appointments[i]).Error; err != nil {
			t.Fatalf("create appointment: %v", err)
		}
	}

	sweeper := NewSweeper(db, bus, email.NewServiceWithProvider(nil))
	sweeper.now = func() time.Time { return now }

	ch, cancel := bus.Subscribe(client.ID)
	defer cancel()

	sweeper.SendAppointmentReminders()

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}

	select {
	case <-ch:
	default:
		t.Fatal("no event published for the reminder")
	}
}

func TestExpirySweepDeactivatesAndNotifies(t *testing.T) {
	db := newSweeperTestDB(t)
	bus := events.NewBus()

	client := models.Client{Name: "Acme"}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}

	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	subs := []models.Subscription{
		{ClientID: client.ID, Plan: models.PlanStarter, Status: models.SubscriptionActive, CurrentPeriodEnd: &past},
		{ClientID: client.ID, Plan: models.PlanPro, Status: models.SubscriptionActive, CurrentPeriodEnd: &future},
	}
	for i := range subs {
		if err := db.Create(&subs[i]).Error; err != nil {
			t.Fatalf("create subscription: %v", err)
		}
	}

	sweeper := NewSweeper(db, bus, email.NewServiceWithProvider(nil))
	sweeper.now = func() time.Time { return now }

	sweeper.SweepExpiredSubscriptions()

	var expired models.Subscription
	if err := db.First(&expired, "id = ?", subs[0].ID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if expired.Status != models.SubscriptionInactive {
		t.Fatalf("expired status = %s, want %s", expired.Status, models.SubscriptionInactive)
	}

	var stillActive models.Subscription
	if err := db.First(&stillActive, "id = ?", subs[1].ID).Error; err != nil {
		t.Fatalf("load subscription: %v", err)
	}
	if stillActive.Status != models.SubscriptionActive {
		t.Fatalf("active status = %s, want %s", stillActive.Status, models.SubscriptionActive)
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 1 {
		t.Fatalf("got %d notifications, want 1", count)
	}
}
