package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/core/vector"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/repositories"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// appendSeparator joins appended content to an existing document
const appendSeparator = "\n\n---\n\n"

// DocumentTree is the folder view of the document manager: folders
// plus the documents sitting at the root.
type DocumentTree struct {
	Folders       []models.Folder   `json:"folders"`
	RootDocuments []models.Document `json:"root_documents"`
}

type DocumentService struct {
	docRepo repositories.DocumentRepo
	vector  *vector.Service
	upload  *upload.Service
	audit   *audit.Service
}

// NewDocumentService creates the document service. vectorSvc may be
// nil when semantic search is disabled.
func NewDocumentService(
	docRepo repositories.DocumentRepo,
	vectorSvc *vector.Service,
	uploadSvc *upload.Service,
	auditSvc *audit.Service,
) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		vector:  vectorSvc,
		upload:  uploadSvc,
		audit:   auditSvc,
	}
}

// CreateDocument creates a text document, optionally inside a folder
func (s *DocumentService) CreateDocument(ctx context.Context, userID, clientID uuid.UUID, req *models.CreateDocumentRequest) (*models.Document, error) {
	if req.Name == "" {
		return nil, errors.New("document name is required")
	}

	doc := &models.Document{
		ClientID: clientID,
		Name:     req.Name,
		Content:  req.Content,
		FileURL:  req.FileURL,
		FileType: req.FileType,
	}

	if req.FolderID != "" {
		folder, err := s.docRepo.GetFolder(clientID, req.FolderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("folder not found")
			}
			return nil, err
		}
		doc.FolderID = &folder.ID
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, err
	}

	s.index(ctx, doc)
	s.audit.Record(userID, clientID, "create", "document", doc.ID.String(), nil, doc)
	return doc, nil
}

// UploadDocument stores an uploaded file and creates a document
// pointing at it
func (s *DocumentService) UploadDocument(ctx context.Context, userID, clientID uuid.UUID, fileHeader *multipart.FileHeader, folderID string) (*models.Document, error) {
	result, err := s.upload.UploadMultipart(ctx, fileHeader, upload.DocumentOptions("documents"))
	if err != nil {
		return nil, err
	}

	req := &models.CreateDocumentRequest{
		Name:     result.FileName,
		FileURL:  result.URL,
		FileType: result.Format,
		FolderID: folderID,
	}
	return s.CreateDocument(ctx, userID, clientID, req)
}

// GetDocument retrieves a document by ID
func (s *DocumentService) GetDocument(clientID uuid.UUID, docID string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(clientID, docID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("document not found")
		}
		return nil, err
	}
	return doc, nil
}

// Tree returns the folder view: all folders plus root documents
func (s *DocumentService) Tree(clientID uuid.UUID) (*DocumentTree, error) {
	folders, err := s.docRepo.ListFolders(clientID)
	if err != nil {
		return nil, err
	}
	rootDocs, err := s.docRepo.List(clientID, nil)
	if err != nil {
		return nil, err
	}
	return &DocumentTree{Folders: folders, RootDocuments: rootDocs}, nil
}

// ListByFolder returns one folder's documents
func (s *DocumentService) ListByFolder(clientID uuid.UUID, folderID string) ([]models.Document, error) {
	folder, err := s.docRepo.GetFolder(clientID, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("folder not found")
		}
		return nil, err
	}
	return s.docRepo.List(clientID, &folder.ID)
}

// UpdateDocument renames, edits or moves a document. MoveToRoot wins
// over FolderID when both are set.
func (s *DocumentService) UpdateDocument(ctx context.Context, userID, clientID uuid.UUID, docID string, req *models.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.GetDocument(clientID, docID)
	if err != nil {
		return nil, err
	}
	before := *doc
	contentChanged := false

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("document name is required")
		}
		doc.Name = *req.Name
		contentChanged = true
	}
	if req.Content != nil {
		doc.Content = *req.Content
		contentChanged = true
	}

	if req.MoveToRoot {
		doc.FolderID = nil
	} else if req.FolderID != nil {
		folder, err := s.docRepo.GetFolder(clientID, *req.FolderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("folder not found")
			}
			return nil, err
		}
		doc.FolderID = &folder.ID
	}

	if err := s.docRepo.Update(doc); err != nil {
		return nil, err
	}

	if contentChanged {
		s.index(ctx, doc)
	}
	s.audit.Record(userID, clientID, "update", "document", doc.ID.String(), before, doc)
	return doc, nil
}

// AppendContent appends assistant-generated content to an existing
// document, separated from the current body.
func (s *DocumentService) AppendContent(ctx context.Context, userID, clientID uuid.UUID, docID, content string) (*models.Document, error) {
	if content == "" {
		return nil, errors.New("content is required")
	}

	doc, err := s.GetDocument(clientID, docID)
	if err != nil {
		return nil, err
	}
	before := *doc

	if doc.Content == "" {
		doc.Content = content
	} else {
		doc.Content += appendSeparator + content
	}

	if err := s.docRepo.Update(doc); err != nil {
		return nil, err
	}

	s.index(ctx, doc)
	s.audit.Record(userID, clientID, "append", "document", doc.ID.String(), before, doc)
	return doc, nil
}

// DeleteDocument removes a document and its vector chunks
func (s *DocumentService) DeleteDocument(ctx context.Context, userID, clientID uuid.UUID, docID string) error {
	doc, err := s.GetDocument(clientID, docID)
	if err != nil {
		return err
	}

	if err := s.docRepo.Delete(clientID, docID); err != nil {
		return err
	}

	if s.vector != nil {
		if err := s.vector.RemoveDocument(ctx, doc.ID); err != nil {
			log.Printf("⚠️ failed to remove document %s from vector index: %v", doc.ID, err)
		}
	}

	s.audit.Record(userID, clientID, "delete", "document", doc.ID.String(), doc, nil)
	return nil
}

// DownloadURL returns a short-lived signed URL for a file document
func (s *DocumentService) DownloadURL(ctx context.Context, clientID uuid.UUID, docID string) (string, error) {
	doc, err := s.GetDocument(clientID, docID)
	if err != nil {
		return "", err
	}
	if doc.FileURL == "" {
		return "", errors.New("document has no file attached")
	}
	return s.upload.SignedURL(ctx, doc.FileURL, 15*time.Minute)
}

// Search runs semantic search over the client's indexed documents
func (s *DocumentService) Search(ctx context.Context, clientID uuid.UUID, query string, limit int) ([]models.DocumentSearchResult, error) {
	if s.vector == nil {
		return nil, errors.New("semantic search is not configured")
	}
	if query == "" {
		return nil, errors.New("query is required")
	}

	matches, err := s.vector.SearchDocuments(ctx, clientID, query, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.DocumentSearchResult, 0, len(matches))
	for _, m := range matches {
		doc, err := s.docRepo.GetByID(clientID, m.DocumentID.String())
		if err != nil {
			continue
		}
		results = append(results, models.DocumentSearchResult{Document: *doc, Score: m.Score})
	}
	return results, nil
}

// CreateFolder creates a folder
func (s *DocumentService) CreateFolder(userID, clientID uuid.UUID, req *models.CreateFolderRequest) (*models.Folder, error) {
	if req.Name == "" {
		return nil, errors.New("folder name is required")
	}

	folder := &models.Folder{
		ClientID: clientID,
		Name:     req.Name,
	}
	if err := s.docRepo.CreateFolder(folder); err != nil {
		return nil, err
	}

	s.audit.Record(userID, clientID, "create", "folder", folder.ID.String(), nil, folder)
	return folder, nil
}

// DeleteFolder removes a folder; its documents move to the root
func (s *DocumentService) DeleteFolder(userID, clientID uuid.UUID, folderID string) error {
	if err := s.docRepo.DeleteFolder(clientID, folderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("folder not found")
		}
		return err
	}

	s.audit.Record(userID, clientID, "delete", "folder", folderID, nil, nil)
	return nil
}

// index pushes a document's text into the vector index, best effort
func (s *DocumentService) index(ctx context.Context, doc *models.Document) {
	if s.vector == nil || doc.Content == "" {
		return
	}
	if err := s.vector.IndexDocument(ctx, doc.ClientID, doc.ID, doc.Name, doc.Content); err != nil {
		log.Printf("⚠️ failed to index document %s: %v", doc.ID, err)
	}
}
