package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/internal/domain/gateway"
	"github.com/oksasatya/go-project-marketplace/internal/infrastructure/storage"
)

// UploadService pushes attachment files to object storage.
type UploadService struct {
	Storage  gateway.ObjectStorage
	MaxBytes int64
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewUploadService(st gateway.ObjectStorage, maxBytes int64, logger *logrus.Logger) *UploadService {
	return &UploadService{Storage: st, MaxBytes: maxBytes, Logger: logger, now: time.Now}
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload stores the file under the user's attachment prefix and returns the
// attachment reference to embed in a project.
func (s *UploadService) Upload(ctx context.Context, userID string, in UploadInput) (entity.Attachment, error) {
	if s.Storage == nil {
		return entity.Attachment{}, ErrStorageUnavailable
	}
	if s.MaxBytes > 0 && in.Size > s.MaxBytes {
		return entity.Attachment{}, ErrFileTooLarge
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := storage.ObjectPath(userID, in.Filename, s.now())
	url, err := s.Storage.Upload(ctx, objectPath, contentType, in.Body)
	if err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "object": objectPath}).Error("upload failed")
		return entity.Attachment{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	uploadsCompleted.Add(1)
	return entity.Attachment{Filename: in.Filename, URL: url}, nil
}
