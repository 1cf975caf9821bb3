package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationRepo interface {
	Create(res *models.Reservation) error
	GetByID(clientID uuid.UUID, id string) (*models.Reservation, error)
	List(clientID uuid.UUID) ([]models.Reservation, error)
	Update(res *models.Reservation) error
	Delete(clientID uuid.UUID, id string) error

	// Reservation types (client-scoped categories)
	CreateType(rt *models.ReservationType) error
	ListTypes(clientID uuid.UUID) ([]models.ReservationType, error)
	DeleteType(clientID uuid.UUID, id string) error

	// Weekday availability windows
	UpsertAvailability(ra *models.ReservationAvailability) error
	ListAvailability(clientID uuid.UUID) ([]models.ReservationAvailability, error)
}

type reservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) ReservationRepo {
	return &reservationRepo{db: db}
}

func (r *reservationRepo) Create(res *models.Reservation) error {
	return r.db.Create(res).Error
}

func (r *reservationRepo) GetByID(clientID uuid.UUID, id string) (*models.Reservation, error) {
	resID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID: %w", err)
	}

	var res models.Reservation
	err = r.db.Where("id = ? AND client_id = ?", resID, clientID).First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepo) List(clientID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.Where("client_id = ?", clientID).
		Order("date ASC, time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepo) Update(res *models.Reservation) error {
	return r.db.Save(res).Error
}

func (r *reservationRepo) Delete(clientID uuid.UUID, id string) error {
	resID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid reservation ID: %w", err)
	}

	result := r.db.Where("id = ? AND client_id = ?", resID, clientID).Delete(&models.Reservation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reservationRepo) CreateType(rt *models.ReservationType) error {
	return r.db.Create(rt).Error
}

func (r *reservationRepo) ListTypes(clientID uuid.UUID) ([]models.ReservationType, error) {
	var types []models.ReservationType
	err := r.db.Where("client_id = ?", clientID).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *reservationRepo) DeleteType(clientID uuid.UUID, id string) error {
	typeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid reservation type ID: %w", err)
	}

	result := r.db.Where("id = ? AND client_id = ?", typeID, clientID).Delete(&models.ReservationType{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reservationRepo) UpsertAvailability(ra *models.ReservationAvailability) error {
	var existing models.ReservationAvailability
	err := r.db.Where("client_id = ? AND weekday = ?", ra.ClientID, ra.Weekday).First(&existing).Error
	if err == nil {
		ra.ID = existing.ID
		ra.CreatedAt = existing.CreatedAt
		return r.db.Save(ra).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(ra).Error
}

func (r *reservationRepo) ListAvailability(clientID uuid.UUID) ([]models.ReservationAvailability, error) {
	var windows []models.ReservationAvailability
	err := r.db.Where("client_id = ?", clientID).Find(&windows).Error
	return windows, err
}
