package notes

import (
	"context"
	"errors"

	"mywork-backend/internal/application/users"
	"mywork-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound     = errors.New("Job not found")
	ErrUserNotFound    = errors.New("User not found for note")
	ErrContentRequired = errors.New("Note content is required")
)

type Service struct {
	DB *gorm.DB
}

// CreateInput carries the POST body. The author resolves by id or email.
type CreateInput struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	Content   string `json:"content"`
	IsPrivate bool   `json:"isPrivate"`
}

// Create appends a note to the job and returns it joined with its author.
func (s *Service) Create(ctx context.Context, jobID string, in CreateInput) (*domain.Note, error) {
	id, err := parseJobID(ctx, s.DB, jobID)
	if err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, ErrContentRequired
	}
	author, err := users.Resolve(ctx, s.DB, in.UserID, in.UserEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	n := &domain.Note{
		JobID:     id,
		UserID:    author.ID,
		Content:   in.Content,
		IsPrivate: in.IsPrivate,
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	n.User = author
	return n, nil
}

// List returns the job's notes newest first, each joined with its author.
func (s *Service) List(ctx context.Context, jobID string) ([]domain.Note, error) {
	id, err := parseJobID(ctx, s.DB, jobID)
	if err != nil {
		return nil, err
	}
	var out []domain.Note
	if err := s.DB.WithContext(ctx).Preload("User").
		Where("job_id = ?", id).Order("created_at DESC").Find(&out).Error; err != nil {
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
