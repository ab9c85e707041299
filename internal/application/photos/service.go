package photos

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"mywork-backend/internal/application/users"
	"mywork-backend/internal/domain"
	"mywork-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound  = errors.New("Job not found")
	ErrMissingInput = errors.New("Missing file or user context")
)

type Service struct {
	DB    *gorm.DB
	Store *storage.LocalStore
}

// CreateInput carries the multipart upload fields.
type CreateInput struct {
	UserID      string
	UserEmail   string
	Caption     string
	FileName    string
	File        io.Reader
	Size        int64
	ContentType string
}

// Create stores the file on disk and records the photo row with the
// public URL and capture metadata.
func (s *Service) Create(ctx context.Context, jobID string, in CreateInput) (*domain.Photo, error) {
	id, err := parseJobID(ctx, s.DB, jobID)
	if err != nil {
		return nil, err
	}
	if in.File == nil {
		return nil, ErrMissingInput
	}
	uploader, err := users.Resolve(ctx, s.DB, in.UserID, in.UserEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrMissingInput
		}
		return nil, err
	}

	url, err := s.Store.Save(in.FileName, in.File)
	if err != nil {
		return nil, err
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"size":        in.Size,
		"contentType": in.ContentType,
	})

	p := &domain.Photo{
		JobID:    id,
		UserID:   uploader.ID,
		URL:      url,
		Caption:  in.Caption,
		Metadata: datatypes.JSON(meta),
	}
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	p.User = uploader
	return p, nil
}

// List returns the job's photos newest first, joined with the uploader.
func (s *Service) List(ctx context.Context, jobID string) ([]domain.Photo, error) {
	id, err := parseJobID(ctx, s.DB, jobID)
	if err != nil {
		return nil, err
	}
	var out []domain.Photo
	if err := s.DB.WithContext(ctx).Preload("User").
		Where("job_id = ?", id).Order("timestamp DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func parseJobID(ctx context.Context, db *gorm.DB, jobID string) (uuid.UUID, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return uuid.Nil, ErrJobNotFound
	}
	var j domain.Job
	if err := db.WithContext(ctx).Select("id").Where("id = ?", id).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrJobNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}
