package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/email"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/pkg/board"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentService struct {
	apptRepo  repositories.AppointmentRepo
	notifRepo repositories.NotificationRepo
	bus       *events.Bus
	email     *email.Service
	audit     *audit.Service
}

func NewAppointmentService(
	apptRepo repositories.AppointmentRepo,
	notifRepo repositories.NotificationRepo,
	bus *events.Bus,
	emailSvc *email.Service,
	auditSvc *audit.Service,
) *AppointmentService {
	return &AppointmentService{
		apptRepo:  apptRepo,
		notifRepo: notifRepo,
		bus:       bus,
		email:     emailSvc,
		audit:     auditSvc,
	}
}

// CreateAppointment books an appointment, notifies the dashboard and
// emails a confirmation when the visitor left an address.
func (s *AppointmentService) CreateAppointment(userID, clientID uuid.UUID, req *models.CreateAppointmentRequest) (*models.Appointment, error) {
	if req.Name == "" {
		return nil, errors.New("appointment name is required")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", req.Date)
	}
	if req.Time == "" {
		return nil, errors.New("appointment time is required")
	}

	appt := &models.Appointment{
		ClientID: clientID,
		Name:     req.Name,
		Email:    req.Email,
		Date:     date,
		Time:     req.Time,
		Type:     req.Type,
		Status:   models.AppointmentPending,
	}
	if err := s.apptRepo.Create(appt); err != nil {
		return nil, err
	}

	s.notify(clientID, "New appointment",
		fmt.Sprintf("%s booked %s at %s", appt.Name, req.Date, appt.Time), appt)

	if appt.Email != "" && s.email.Enabled() {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your appointment on %s at %s is booked.</p>",
			appt.Name, req.Date, appt.Time,
		)
		_ = s.email.SendEmail(appt.Email, "Appointment confirmed", body)
	}

	s.audit.Record(userID, clientID, "create", "appointment", appt.ID.String(), nil, appt)
	return appt, nil
}

// GetAppointment retrieves an appointment by ID
func (s *AppointmentService) GetAppointment(clientID uuid.UUID, apptID string) (*models.Appointment, error) {
	appt, err := s.apptRepo.GetByID(clientID, apptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("appointment not found")
		}
		return nil, err
	}
	return appt, nil
}

// ListAppointments returns all appointments for a client
func (s *AppointmentService) ListAppointments(clientID uuid.UUID) ([]models.Appointment, error) {
	return s.apptRepo.List(clientID)
}

// AppointmentBoard returns appointments grouped into status columns
func (s *AppointmentService) AppointmentBoard(clientID uuid.UUID) ([]board.Column[models.Appointment], error) {
	appts, err := s.apptRepo.List(clientID)
	if err != nil {
		return nil, err
	}
	return board.GroupByStatus(appts, models.AppointmentStatuses), nil
}

// UpdateAppointment edits an appointment
func (s *AppointmentService) UpdateAppointment(userID, clientID uuid.UUID, apptID string, req *models.UpdateAppointmentRequest) (*models.Appointment, error) {
	appt, err := s.GetAppointment(clientID, apptID)
	if err != nil {
		return nil, err
	}
	before := *appt

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("appointment name is required")
		}
		appt.Name = *req.Name
	}
	if req.Email != nil {
		appt.Email = *req.Email
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", *req.Date)
		}
		appt.Date = date
	}
	if req.Time != nil {
		appt.Time = *req.Time
	}
	if req.Type != nil {
		appt.Type = *req.Type
	}
	if req.Status != nil {
		if !validStatus(*req.Status, models.AppointmentStatuses) {
			return nil, errors.New("invalid appointment status")
		}
		appt.Status = *req.Status
	}

	if err := s.apptRepo.Update(appt); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "update", "appointment", appt.ID.String(), before, appt)
	return appt, nil
}

// MoveAppointment changes an appointment's board column. A same-column
// drop returns the record unchanged with no write.
func (s *AppointmentService) MoveAppointment(userID, clientID uuid.UUID, apptID, targetStatus string) (*models.Appointment, error) {
	if !validStatus(targetStatus, models.AppointmentStatuses) {
		return nil, errors.New("invalid appointment status")
	}

	appt, err := s.GetAppointment(clientID, apptID)
	if err != nil {
		return nil, err
	}
	if appt.Status == targetStatus {
		return appt, nil
	}
	before := *appt

	appt.Status = targetStatus
	if err := s.apptRepo.Update(appt); err != nil {
		return nil, err
	}

	if targetStatus == models.AppointmentCancelled && appt.Email != "" && s.email.Enabled() {
		body := fmt.Sprintf(
			"<p>Hi %s,</p><p>Your appointment on %s at %s was cancelled.</p>",
			appt.Name, appt.Date.Format("2006-01-02"), appt.Time,
		)
		_ = s.email.SendEmail(appt.Email, "Appointment cancelled", body)
	}

	s.audit.Record(userID, clientID, "move", "appointment", appt.ID.String(), before, appt)
	return appt, nil
}

// DeleteAppointment removes an appointment
func (s *AppointmentService) DeleteAppointment(userID, clientID uuid.UUID, apptID string) error {
	appt, err := s.GetAppointment(clientID, apptID)
	if err != nil {
		return err
	}

	if err := s.apptRepo.Delete(clientID, apptID); err != nil {
		return err
	}

	s.audit.Record(userID, clientID, "delete", "appointment", appt.ID.String(), appt, nil)
	return nil
}

func (s *AppointmentService) notify(clientID uuid.UUID, title, body string, payload interface{}) {
	notification := &models.Notification{
		ClientID: clientID,
		Title:    title,
		Body:     body,
	}
	if err := s.notifRepo.Create(notification); err == nil {
		s.bus.Publish(events.Event{
			Type:     events.TypeNotification,
			ClientID: clientID,
			Payload:  notification,
		})
	}

	s.bus.Publish(events.Event{
		Type:     events.TypeAppointment,
		ClientID: clientID,
		Payload:  payload,
	})
}
