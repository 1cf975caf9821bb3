package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is a flat (non-nested) grouping of documents per client
type Folder struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Name string `gorm:"type:text;not null" json:"name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Folder) TableName() string {
	return "dash_folders"
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Document is a text or uploaded-file document in the document manager.
// FolderID nil means the document sits at the root.
type Document struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"client_id"`
	FolderID *uuid.UUID `gorm:"type:uuid;index" json:"folder_id,omitempty"`

	Name     string `gorm:"type:text;not null" json:"name"`
	Content  string `gorm:"type:text" json:"content,omitempty"`
	FileURL  string `gorm:"type:text" json:"file_url,omitempty"`
	FileType string `gorm:"type:text" json:"file_type,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client  `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Folder *Folder `gorm:"foreignKey:FolderID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Document) TableName() string {
	return "dash_documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// CreateDocumentRequest creates a document
type CreateDocumentRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Content  string `json:"content,omitempty"`
	FileURL  string `json:"file_url,omitempty" validate:"omitempty,url"`
	FileType string `json:"file_type,omitempty"`
	FolderID string `json:"folder_id,omitempty" validate:"omitempty,uuid"`
}

// UpdateDocumentRequest updates a document. MoveToRoot distinguishes
// "move to root" from "leave folder unchanged" since both would
// otherwise serialize as a missing folder_id.
type UpdateDocumentRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Content    *string `json:"content,omitempty"`
	FolderID   *string `json:"folder_id,omitempty" validate:"omitempty,uuid"`
	MoveToRoot bool    `json:"move_to_root,omitempty"`
}

// CreateFolderRequest creates a folder
type CreateFolderRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// DocumentSearchResult is a semantic search hit from the vector index
type DocumentSearchResult struct {
	Document Document `json:"document"`
	Score    float32  `json:"score"`
}
