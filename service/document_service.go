package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// ObjectStorage the blob operations the document flow needs.
// *supabase.Storage satisfies it; tests plug in a fake.
type ObjectStorage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	Remove(ctx context.Context, paths []string) error
	PublicURL(path string) string
}

// DocumentService building documents: blob upload plus metadata row.
type DocumentService struct {
	repo     repository.DocumentsRepository
	storage  ObjectStorage
	identity Identity
	logger   *zap.Logger
}

func NewDocumentService(repo repository.DocumentsRepository, storage ObjectStorage, identity Identity, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		repo:     repo,
		storage:  storage,
		identity: identity,
		logger:   logger,
	}
}

// GetDocuments lists document metadata newest first, optionally scoped to
// one building.
func (s *DocumentService) GetDocuments(ctx context.Context, buildingID *string) ([]domain.BuildingDocument, error) {
	return s.repo.List(ctx, buildingID)
}

// DocumentURL returns the public URL for a stored document path.
func (s *DocumentService) DocumentURL(filePath string) string {
	return s.storage.PublicURL(filePath)
}

// UploadDocumentInput upload parameters
type UploadDocumentInput struct {
	Title       string
	FileName    string // original file name; only the extension is kept
	Data        []byte
	ContentType string  // empty falls back to application/octet-stream
	BuildingID  *string // nil files under the "default" folder
}

// UploadDocument uploads the blob, then inserts the metadata row. The two
// steps are not atomic: if the row insert fails the blob is removed
// best-effort, and a failed removal leaves an orphan that is logged and
// reported inside the returned error.
func (s *DocumentService) UploadDocument(ctx context.Context, in UploadDocumentInput) (*domain.BuildingDocument, error) {
	if in.Title == "" {
		return nil, domain.Required("title")
	}
	if len(in.Data) == 0 {
		return nil, domain.Required("data")
	}

	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	folder := "default"
	if in.BuildingID != nil && *in.BuildingID != "" {
		folder = *in.BuildingID
	}
	filePath := fmt.Sprintf("%s/%d_%s%s", folder, time.Now().UnixMilli(), user.ID, path.Ext(in.FileName))

	if err := s.storage.Upload(ctx, filePath, in.Data, in.ContentType); err != nil {
		return nil, fmt.Errorf("upload blob: %w", err)
	}

	created, err := s.repo.Insert(ctx, repository.NewDocument{
		Title:      in.Title,
		FilePath:   filePath,
		BuildingID: in.BuildingID,
		UploadedBy: user.ID,
	})
	if err != nil {
		if rmErr := s.storage.Remove(ctx, []string{filePath}); rmErr != nil {
			s.logger.Error("orphaned blob after failed metadata insert",
				zap.String("file_path", filePath),
				zap.Error(rmErr))
			return nil, fmt.Errorf("insert document row: %w (orphaned blob at %s)", err, filePath)
		}
		return nil, fmt.Errorf("insert document row: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("document_id", created.ID),
		zap.String("file_path", filePath))
	return created, nil
}

// DeleteDocument removes the metadata row only; the blob stays in storage.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	if id == "" {
		return domain.Required("id")
	}
	if _, err := requireUser(ctx, s.identity); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
