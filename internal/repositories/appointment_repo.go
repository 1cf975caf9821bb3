package repositories

import (
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepo interface {
	Create(appt *models.Appointment) error
	GetByID(clientID uuid.UUID, id string) (*models.Appointment, error)
	List(clientID uuid.UUID) ([]models.Appointment, error)
	ListByDate(clientID uuid.UUID, day time.Time) ([]models.Appointment, error)
	Update(appt *models.Appointment) error
	Delete(clientID uuid.UUID, id string) error
}

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) AppointmentRepo {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

func (r *appointmentRepo) GetByID(clientID uuid.UUID, id string) (*models.Appointment, error) {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID: %w", err)
	}

	var appt models.Appointment
	err = r.db.Where("id = ? AND client_id = ?", apptID, clientID).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) List(clientID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("client_id = ?", clientID).
		Order("date ASC, time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) ListByDate(clientID uuid.UUID, day time.Time) ([]models.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var appts []models.Appointment
	err := r.db.Where("client_id = ? AND date >= ? AND date < ?", clientID, start, end).
		Order("time ASC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) Update(appt *models.Appointment) error {
	return r.db.Save(appt).Error
}

func (r *appointmentRepo) Delete(clientID uuid.UUID, id string) error {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid appointment ID: %w", err)
	}

	result := r.db.Where("id = ? AND client_id = ?", apptID, clientID).Delete(&models.Appointment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
