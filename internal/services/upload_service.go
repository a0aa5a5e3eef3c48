package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	apperrors "eventhub/pkg/errors"

	"github.com/google/uuid"
)

// FileStorage is the object store behind image uploads. Satisfied by
// storage.Client; tests substitute a fake.
type FileStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// ImageStore is what the event service needs from the upload layer.
type ImageStore interface {
	StoreEventImage(ctx context.Context, eventID uuid.UUID, file *multipart.FileHeader) (string, error)
}

type UploadService struct {
	storage FileStorage
}

func NewUploadService(storage FileStorage) *UploadService {
	return &UploadService{storage: storage}
}

// StoreEventImage persists one uploaded image and returns its stored URL.
func (s *UploadService) StoreEventImage(ctx context.Context, eventID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", apperrors.ErrNotUploaded
	}
	if s.storage == nil {
		return "", fmt.Errorf("file storage is not configured")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return "", apperrors.ErrInvalidInput
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := buildImageKey(eventID, file.Filename)
	return s.storage.Upload(ctx, key, contentType, src)
}

func buildImageKey(eventID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("events/%s/%s%s", eventID, uuid.NewString(), ext)
}
