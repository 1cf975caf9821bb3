package repositories

import (
	"fmt"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepo interface {
	Create(doc *models.Document) error
	GetByID(clientID uuid.UUID, id string) (*models.Document, error)
	List(clientID uuid.UUID, folderID *uuid.UUID) ([]models.Document, error)
	ListAll(clientID uuid.UUID) ([]models.Document, error)
	Update(doc *models.Document) error
	Delete(clientID uuid.UUID, id string) error

	CreateFolder(folder *models.Folder) error
	GetFolder(clientID uuid.UUID, id string) (*models.Folder, error)
	ListFolders(clientID uuid.UUID) ([]models.Folder, error)
	DeleteFolder(clientID uuid.UUID, id string) error
}

type documentRepo struct {
	db *gorm.DB
}

func NewDocumentRepo(db *gorm.DB) DocumentRepo {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepo) GetByID(clientID uuid.UUID, id string) (*models.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid document ID: %w", err)
	}

	var doc models.Document
	err = r.db.Where("id = ? AND client_id = ?", docID, clientID).First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns documents in one folder, or root documents when
// folderID is nil
func (r *documentRepo) List(clientID uuid.UUID, folderID *uuid.UUID) ([]models.Document, error) {
	query := r.db.Where("client_id = ?", clientID)
	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}

	var docs []models.Document
	err := query.Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepo) ListAll(clientID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *documentRepo) Update(doc *models.Document) error {
	// Save skips nil fields, so a move-to-root needs an explicit
	// column update
	if doc.FolderID == nil {
		if err := r.db.Model(&models.Document{}).
			Where("id = ?", doc.ID).
			Update("folder_id", nil).Error; err != nil {
			return err
		}
	}
	return r.db.Save(doc).Error
}

func (r *documentRepo) Delete(clientID uuid.UUID, id string) error {
	docID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	result := r.db.Where("id = ? AND client_id = ?", docID, clientID).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *documentRepo) CreateFolder(folder *models.Folder) error {
	return r.db.Create(folder).Error
}

func (r *documentRepo) GetFolder(clientID uuid.UUID, id string) (*models.Folder, error) {
	folderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid folder ID: %w", err)
	}

	var folder models.Folder
	err = r.db.Where("id = ? AND client_id = ?", folderID, clientID).First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *documentRepo) ListFolders(clientID uuid.UUID) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.db.Where("client_id = ?", clientID).Order("name ASC").Find(&folders).Error
	return folders, err
}

// DeleteFolder removes a folder; its documents fall back to the root
// via the ON DELETE SET NULL constraint
func (r *documentRepo) DeleteFolder(clientID uuid.UUID, id string) error {
	folderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid folder ID: %w", err)
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		// Explicit orphaning keeps sqlite (no FK cascade in tests)
		// consistent with the postgres constraint
		if err := tx.Model(&models.Document{}).
			Where("client_id = ? AND folder_id = ?", clientID, folderID).
			Update("folder_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("id = ? AND client_id = ?", folderID, clientID).Delete(&models.Folder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
