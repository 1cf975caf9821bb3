package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/events"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/pkg/board"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationService struct {
	resRepo   repositories.ReservationRepo
	notifRepo repositories.NotificationRepo
	bus       *events.Bus
	audit     *audit.Service
}

func NewReservationService(
	resRepo repositories.ReservationRepo,
	notifRepo repositories.NotificationRepo,
	bus *events.Bus,
	auditSvc *audit.Service,
) *ReservationService {
	return &ReservationService{
		resRepo:   resRepo,
		notifRepo: notifRepo,
		bus:       bus,
		audit:     auditSvc,
	}
}

// CreateReservation books a reservation after checking the weekday
// availability window (when one is configured).
func (s *ReservationService) CreateReservation(userID, clientID uuid.UUID, req *models.CreateReservationRequest) (*models.Reservation, error) {
	if req.Name == "" {
		return nil, errors.New("reservation name is required")
	}
	if req.PeopleCount < 1 {
		return nil, errors.New("people count must be at least 1")
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", req.Date)
	}
	if req.Time == "" {
		return nil, errors.New("reservation time is required")
	}

	if err := s.checkAvailability(clientID, date, req.Time, req.PeopleCount); err != nil {
		return nil, err
	}

	res := &models.Reservation{
		ClientID:        clientID,
		Name:            req.Name,
		Email:           req.Email,
		Date:            date,
		Time:            req.Time,
		ReservationType: req.ReservationType,
		PeopleCount:     req.PeopleCount,
		SpecialRequests: req.SpecialRequests,
		Status:          models.ReservationPending,
	}
	if err := s.resRepo.Create(res); err != nil {
		return nil, err
	}

	s.notify(clientID, "New reservation",
		fmt.Sprintf("%s booked for %d on %s at %s", res.Name, res.PeopleCount, req.Date, res.Time), res)

	s.audit.Record(userID, clientID, "create", "reservation", res.ID.String(), nil, res)
	return res, nil
}

// GetReservation retrieves a reservation by ID
func (s *ReservationService) GetReservation(clientID uuid.UUID, resID string) (*models.Reservation, error) {
	res, err := s.resRepo.GetByID(clientID, resID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation not found")
		}
		return nil, err
	}
	return res, nil
}

// ListReservations returns all reservations for a client
func (s *ReservationService) ListReservations(clientID uuid.UUID) ([]models.Reservation, error) {
	return s.resRepo.List(clientID)
}

// ReservationBoard returns reservations grouped into status columns
func (s *ReservationService) ReservationBoard(clientID uuid.UUID) ([]board.Column[models.Reservation], error) {
	reservations, err := s.resRepo.List(clientID)
	if err != nil {
		return nil, err
	}
	return board.GroupByStatus(reservations, models.ReservationStatuses), nil
}

// UpdateReservation edits a reservation
func (s *ReservationService) UpdateReservation(userID, clientID uuid.UUID, resID string, req *models.UpdateReservationRequest) (*models.Reservation, error) {
	res, err := s.GetReservation(clientID, resID)
	if err != nil {
		return nil, err
	}
	before := *res

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("reservation name is required")
		}
		res.Name = *req.Name
	}
	if req.Email != nil {
		res.Email = *req.Email
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", *req.Date)
		}
		res.Date = date
	}
	if req.Time != nil {
		res.Time = *req.Time
	}
	if req.ReservationType != nil {
		res.ReservationType = *req.ReservationType
	}
	if req.PeopleCount != nil {
		if *req.PeopleCount < 1 {
			return nil, errors.New("people count must be at least 1")
		}
		res.PeopleCount = *req.PeopleCount
	}
	if req.SpecialRequests != nil {
		res.SpecialRequests = *req.SpecialRequests
	}
	if req.Status != nil {
		if !validStatus(*req.Status, models.ReservationStatuses) {
			return nil, errors.New("invalid reservation status")
		}
		res.Status = *req.Status
	}

	if err := s.resRepo.Update(res); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "update", "reservation", res.ID.String(), before, res)
	return res, nil
}

// MoveReservation changes a reservation's board column. A same-column
// drop returns the record unchanged with no write.
func (s *ReservationService) MoveReservation(userID, clientID uuid.UUID, resID, targetStatus string) (*models.Reservation, error) {
	if !validStatus(targetStatus, models.ReservationStatuses) {
		return nil, errors.New("invalid reservation status")
	}

	res, err := s.GetReservation(clientID, resID)
	if err != nil {
		return nil, err
	}
	if res.Status == targetStatus {
		return res, nil
	}
	before := *res

	res.Status = targetStatus
	if err := s.resRepo.Update(res); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "move", "reservation", res.ID.String(), before, res)
	return res, nil
}

// DeleteReservation removes a reservation
func (s *ReservationService) DeleteReservation(userID, clientID uuid.UUID, resID string) error {
	res, err := s.GetReservation(clientID, resID)
	if err != nil {
		return err
	}

	if err := s.resRepo.Delete(clientID, resID); err != nil {
		return err
	}

	s.audit.Record(userID, clientID, "delete", "reservation", res.ID.String(), res, nil)
	return nil
}

// CreateReservationType adds a client-scoped reservation category
func (s *ReservationService) CreateReservationType(userID, clientID uuid.UUID, req *models.CreateReservationTypeRequest) (*models.ReservationType, error) {
	if req.Name == "" {
		return nil, errors.New("reservation type name is required")
	}

	rt := &models.ReservationType{
		ClientID: clientID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}
	if err := s.resRepo.CreateType(rt); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "create", "reservation_type", rt.ID.String(), nil, rt)
	return rt, nil
}

// ListReservationTypes returns the client's reservation categories
func (s *ReservationService) ListReservationTypes(clientID uuid.UUID) ([]models.ReservationType, error) {
	return s.resRepo.ListTypes(clientID)
}

// DeleteReservationType removes a reservation category
func (s *ReservationService) DeleteReservationType(userID, clientID uuid.UUID, typeID string) error {
	if err := s.resRepo.DeleteType(clientID, typeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation type not found")
		}
		return err
	}

	s.audit.Record(userID, clientID, "delete", "reservation_type", typeID, nil, nil)
	return nil
}

// UpsertAvailability sets one weekday's reservation window
func (s *ReservationService) UpsertAvailability(userID, clientID uuid.UUID, req *models.UpsertAvailabilityRequest) (*models.ReservationAvailability, error) {
	weekday := strings.ToLower(req.Weekday)
	if !validWeekday(weekday) {
		return nil, fmt.Errorf("invalid weekday %q", req.Weekday)
	}
	if req.StartTime == "" || req.EndTime == "" {
		return nil, errors.New("start and end time are required")
	}

	ra := &models.ReservationAvailability{
		ClientID:  clientID,
		Weekday:   weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Enabled:   true,
	}
	if req.Enabled != nil {
		ra.Enabled = *req.Enabled
	}
	if req.MaxPartySize != nil {
		ra.MaxPartySize = *req.MaxPartySize
	}

	if err := s.resRepo.UpsertAvailability(ra); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "upsert", "reservation_availability", ra.ID.String(), nil, ra)
	return ra, nil
}

// ListAvailability returns the client's weekday windows
func (s *ReservationService) ListAvailability(clientID uuid.UUID) ([]models.ReservationAvailability, error) {
	return s.resRepo.ListAvailability(clientID)
}

// checkAvailability rejects a booking when its weekday window is
// disabled or the party exceeds the window's max size. Days without a
// configured window accept everything.
func (s *ReservationService) checkAvailability(clientID uuid.UUID, date time.Time, timeOfDay string, peopleCount int) error {
	windows, err := s.resRepo.ListAvailability(clientID)
	if err != nil {
		return err
	}

	weekday := strings.ToLower(date.Weekday().String())
	for _, w := range windows {
		if w.Weekday != weekday {
			continue
		}
		if !w.Enabled {
			return fmt.Errorf("reservations are closed on %s", weekday)
		}
		if timeOfDay < w.StartTime || timeOfDay > w.EndTime {
			return fmt.Errorf("reservations on %s are accepted between %s and %s", weekday, w.StartTime, w.EndTime)
		}
		if w.MaxPartySize > 0 && peopleCount > w.MaxPartySize {
			return fmt.Errorf("party size %d exceeds the maximum of %d", peopleCount, w.MaxPartySize)
		}
		return nil
	}
	return nil
}

func (s *ReservationService) notify(clientID uuid.UUID, title, body string, payload interface{}) {
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
		Type:     events.TypeReservation,
		ClientID: clientID,
		Payload:  payload,
	})
}

func validWeekday(weekday string) bool {
	switch weekday {
	case "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday":
		return true
	}
	return false
}
