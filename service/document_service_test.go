package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vaadbayit/domain"
	"vaadbayit/repository"
)

// fakeStorage in-memory ObjectStorage with per-call failure switches.
type fakeStorage struct {
	blobs      map[string][]byte
	failUpload bool
	failRemove bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{blobs: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	if f.failUpload {
		return errors.New("storage unavailable")
	}
	f.blobs[path] = data
	return nil
}

func (f *fakeStorage) Remove(ctx context.Context, paths []string) error {
	if f.failRemove {
		return errors.New("storage unavailable")
	}
	for _, p := range paths {
		delete(f.blobs, p)
	}
	return nil
}

func (f *fakeStorage) PublicURL(path string) string {
	return "https://cdn.example/" + path
}

// failingDocsRepo DocumentsRepository whose Insert always errors.
type failingDocsRepo struct {
	*repository.MemoryDocumentsRepo
}

func (r failingDocsRepo) Insert(ctx context.Context, row repository.NewDocument) (*domain.BuildingDocument, error) {
	return nil, errors.New("insert rejected")
}

func TestUploadDocument_Basic(t *testing.T) {
	storage := newFakeStorage()
	repo := repository.NewMemoryDocumentsRepo()
	svc := NewDocumentService(repo, storage, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())

	created, err := svc.UploadDocument(context.Background(), UploadDocumentInput{
		Title:       "House insurance",
		FileName:    "insurance.pdf",
		Data:        []byte("pdf-bytes"),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	require.Equal(t, "tenant-1", created.UploadedBy)
	require.Nil(t, created.BuildingID)

	// No building: blob lands in the default folder, extension preserved.
	require.True(t, strings.HasPrefix(created.FilePath, "default/"))
	require.True(t, strings.HasSuffix(created.FilePath, "_tenant-1.pdf"))
	require.Contains(t, storage.blobs, created.FilePath)

	require.Equal(t, "https://cdn.example/"+created.FilePath, svc.DocumentURL(created.FilePath))
}

func TestUploadDocument_BuildingFolder(t *testing.T) {
	storage := newFakeStorage()
	repo := repository.NewMemoryDocumentsRepo()
	svc := NewDocumentService(repo, storage, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())

	building := "bldg-7"
	created, err := svc.UploadDocument(context.Background(), UploadDocumentInput{
		Title:      "Elevator permit",
		FileName:   "permit.jpg",
		Data:       []byte("jpg-bytes"),
		BuildingID: &building,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(created.FilePath, "bldg-7/"))

	docs, err := svc.GetDocuments(context.Background(), &building)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestUploadDocument_StorageFailureLeavesNoRow(t *testing.T) {
	storage := newFakeStorage()
	storage.failUpload = true
	repo := repository.NewMemoryDocumentsRepo()
	svc := NewDocumentService(repo, storage, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())

	_, err := svc.UploadDocument(context.Background(), UploadDocumentInput{
		Title:    "Doomed",
		FileName: "doomed.pdf",
		Data:     []byte("x"),
	})
	require.Error(t, err)

	docs, listErr := repo.List(context.Background(), nil)
	require.NoError(t, listErr)
	require.Empty(t, docs)
}

func TestUploadDocument_InsertFailureRemovesBlob(t *testing.T) {
	storage := newFakeStorage()
	repo := failingDocsRepo{repository.NewMemoryDocumentsRepo()}
	svc := NewDocumentService(repo, storage, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())

	_, err := svc.UploadDocument(context.Background(), UploadDocumentInput{
		Title:    "Doomed",
		FileName: "doomed.pdf",
		Data:     []byte("x"),
	})
	require.Error(t, err)
	require.Empty(t, storage.blobs)
}

func TestUploadDocument_OrphanReported(t *testing.T) {
	storage := newFakeStorage()
	storage.failRemove = true
	repo := failingDocsRepo{repository.NewMemoryDocumentsRepo()}
	svc := NewDocumentService(repo, storage, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())

	_, err := svc.UploadDocument(context.Background(), UploadDocumentInput{
		Title:    "Doomed",
		FileName: "doomed.pdf",
		Data:     []byte("x"),
	})
	require.Error(t, err)
	// Cleanup failed too: the error names the orphaned path.
	require.Contains(t, fmt.Sprint(err), "orphaned blob")
	require.Len(t, storage.blobs, 1)
}

func TestDeleteDocument_RowOnly(t *testing.T) {
	storage := newFakeStorage()
	repo := repository.NewMemoryDocumentsRepo()
	svc := NewDocumentService(repo, storage, StaticIdentity{User: testUser("tenant-1")}, zap.NewNop())

	created, err := svc.UploadDocument(context.Background(), UploadDocumentInput{
		Title:    "Temp",
		FileName: "temp.txt",
		Data:     []byte("x"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDocument(context.Background(), created.ID))

	docs, err := svc.GetDocuments(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, docs)
	// Blob stays behind.
	require.Contains(t, storage.blobs, created.FilePath)
}
