package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"docvault/internal/auth"
	"docvault/internal/cache"
	apperrors "docvault/internal/errors"
	"docvault/internal/ingestion"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/storage"
)

const documentCacheTTL = 5 * time.Minute

// DocumentPatch carries optional metadata changes for an update. Nil fields
// are left untouched.
type DocumentPatch struct {
	Title       *string
	Description *string
}

// DocumentService scopes document CRUD by ownership and drives the
// asynchronous ingestion status workflow.
type DocumentService interface {
	Create(ctx context.Context, caller *auth.Claims, title, description string, file *multipart.FileHeader) (*model.Document, error)
	List(ctx context.Context, caller *auth.Claims) ([]model.Document, error)
	Get(ctx context.Context, id uuid.UUID, caller *auth.Claims) (*model.Document, error)
	Update(ctx context.Context, id uuid.UUID, caller *auth.Claims, patch DocumentPatch, file *multipart.FileHeader) (*model.Document, error)
	Remove(ctx context.Context, id uuid.UUID, caller *auth.Claims) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Document, error)
	GetStatus(ctx context.Context, id uuid.UUID, caller *auth.Claims) (model.DocumentStatus, string, error)
	ProcessDocument(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	repo      repository.DocumentRepository
	files     *storage.FileStore
	ingestion ingestion.Client
	cache     *cache.Client
}

// NewDocumentService creates a new document service.
func NewDocumentService(repo repository.DocumentRepository, files *storage.FileStore, client ingestion.Client, cache *cache.Client) DocumentService {
	return &documentService{
		repo:      repo,
		files:     files,
		ingestion: client,
		cache:     cache,
	}
}

func (s *documentService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("document:%s", id.String())
}

// Create stores the uploaded file, persists the row with status pending and
// fires the ingestion workflow without waiting for it.
func (s *documentService) Create(ctx context.Context, caller *auth.Claims, title, description string, file *multipart.FileHeader) (*model.Document, error) {
	stored, err := s.files.Save(file)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		Title:       title,
		Description: description,
		FileName:    stored.Name,
		FilePath:    stored.Path,
		FileType:    stored.Type,
		FileSize:    stored.Size,
		Status:      model.DocumentStatusPending,
		UserID:      caller.UserID,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		// The row never existed; remove the file so it does not orphan.
		if rmErr := s.files.Remove(stored.Path); rmErr != nil {
			log.Printf("remove file after failed create: %v", rmErr)
		}
		return nil, fmt.Errorf("create document: %w", err)
	}

	s.triggerIngestion(doc.ID)
	return doc, nil
}

// List returns all documents for admins and owner-scoped documents otherwise.
func (s *documentService) List(ctx context.Context, caller *auth.Claims) ([]model.Document, error) {
	if caller.Role == model.RoleAdmin {
		return s.repo.List(ctx)
	}
	return s.repo.ListByOwner(ctx, caller.UserID)
}

// Get fetches a document and enforces the ownership/role check: missing row
// is NotFound, existing row owned by someone else is Forbidden for non-admins.
func (s *documentService) Get(ctx context.Context, id uuid.UUID, caller *auth.Claims) (*model.Document, error) {
	doc, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.Role != model.RoleAdmin && doc.UserID != caller.UserID {
		return nil, apperrors.ErrForbidden
	}
	return doc, nil
}

// Update patches metadata and optionally replaces the backing file. A file
// replacement deletes the old file best-effort and re-triggers ingestion;
// a metadata-only update leaves file fields and status untouched.
func (s *documentService) Update(ctx context.Context, id uuid.UUID, caller *auth.Claims, patch DocumentPatch, file *multipart.FileHeader) (*model.Document, error) {
	doc, err := s.Get(ctx, id, caller)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		doc.Title = *patch.Title
	}
	if patch.Description != nil {
		doc.Description = *patch.Description
	}

	replaced := false
	if file != nil {
		stored, err := s.files.Save(file)
		if err != nil {
			return nil, err
		}
		if err := s.files.Remove(doc.FilePath); err != nil {
			log.Printf("remove old file %s: %v", doc.FilePath, err)
		}
		doc.FileName = stored.Name
		doc.FilePath = stored.Path
		doc.FileType = stored.Type
		doc.FileSize = stored.Size
		replaced = true
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	if replaced {
		s.triggerIngestion(doc.ID)
	}
	return doc, nil
}

// Remove deletes the backing file best-effort, then the row.
func (s *documentService) Remove(ctx context.Context, id uuid.UUID, caller *auth.Claims) error {
	doc, err := s.Get(ctx, id, caller)
	if err != nil {
		return err
	}

	if err := s.files.Remove(doc.FilePath); err != nil {
		log.Printf("remove file %s: %v", doc.FilePath, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// UpdateStatus overwrites the status unconditionally; it is the path used by
// the ingestion side reporting back. Unknown statuses are rejected. When the
// save itself fails, the failure is recorded best-effort before re-raising.
func (s *documentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Document, error) {
	parsed, ok := model.ParseDocumentStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidStatus, status)
	}

	doc, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Status = parsed
	doc.ErrorMessage = ""
	if err := s.repo.Update(ctx, doc); err != nil {
		doc.Status = model.DocumentStatusFailed
		doc.ErrorMessage = err.Error()
		if saveErr := s.repo.Update(ctx, doc); saveErr != nil {
			log.Printf("record status failure for document %s: %v", id, saveErr)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(id))
		return nil, fmt.Errorf("update status: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return doc, nil
}

// GetStatus returns the current status and error message, ownership-scoped.
func (s *documentService) GetStatus(ctx context.Context, id uuid.UUID, caller *auth.Claims) (model.DocumentStatus, string, error) {
	doc, err := s.Get(ctx, id, caller)
	if err != nil {
		return "", "", err
	}
	return doc.Status, doc.ErrorMessage, nil
}

// ProcessDocument makes one outbound ingestion call and persists the outcome.
// Any failure lands in the document's status and error fields; no retry.
func (s *documentService) ProcessDocument(ctx context.Context, id uuid.UUID) error {
	doc, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	status, err := s.ingestion.Process(ctx, id.String())
	if err != nil {
		doc.Status = model.DocumentStatusFailed
		doc.ErrorMessage = err.Error()
		if saveErr := s.repo.Update(ctx, doc); saveErr != nil {
			log.Printf("record ingestion failure for document %s: %v", id, saveErr)
		}
		_ = s.cache.Delete(ctx, s.cacheKey(id))
		return err
	}

	parsed, ok := model.ParseDocumentStatus(status)
	if !ok {
		doc.Status = model.DocumentStatusFailed
		doc.ErrorMessage = fmt.Sprintf("ingestion returned unknown status %q", status)
	} else {
		doc.Status = parsed
		doc.ErrorMessage = ""
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return fmt.Errorf("save ingestion status: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// triggerIngestion launches the workflow detached from the request so the
// triggering response returns immediately. Errors are logged only.
func (s *documentService) triggerIngestion(id uuid.UUID) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.ProcessDocument(ctx, id); err != nil {
			log.Printf("process document %s: %v", id, err)
		}
	}()
}

// findByID resolves a document through the cache, mapping missing rows to
// the domain NotFound error.
func (s *documentService) findByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Document
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrDocumentNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(doc); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, documentCacheTTL)
	}
	return doc, nil
}
