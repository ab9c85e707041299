package durationrequests

import (
	"context"
	"errors"
	"time"

	"mywork-backend/internal/application/users"
	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound       = errors.New("Job not found")
	ErrRequestNotFound   = errors.New("Duration change request not found")
	ErrUserNotFound      = errors.New("User not found for duration request")
	ErrDurationInvalid   = errors.New("Requested duration must be at least 1 day")
	ErrAlreadyResolved   = errors.New("Request has already been resolved")
	ErrResolutionInvalid = errors.New("Resolution must be approved or denied")
)

type Service struct {
	DB *gorm.DB
}

// CreateInput carries the POST body. The requester resolves by id or email.
type CreateInput struct {
	UserID            string `json:"userId"`
	UserEmail         string `json:"userEmail"`
	RequestedDuration int    `json:"requestedDuration"`
	Reason            string `json:"reason"`
}

// Create files a pending request against the job, capturing the job's
// current duration for the reviewer.
func (s *Service) Create(ctx context.Context, jobID string, in CreateInput) (*domain.DurationChangeRequest, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if in.RequestedDuration < 1 {
		return nil, ErrDurationInvalid
	}

	var job domain.Job
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	requester, err := users.Resolve(ctx, s.DB, in.UserID, in.UserEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	r := &domain.DurationChangeRequest{
		JobID:             id,
		RequestedByID:     requester.ID,
		CurrentDuration:   job.Duration,
		RequestedDuration: in.RequestedDuration,
		Reason:            in.Reason,
	}
	if err := s.DB.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	r.RequestedBy = requester
	return r, nil
}

// List returns the job's requests newest first, joined with the requester.
func (s *Service) List(ctx context.Context, jobID string) ([]domain.DurationChangeRequest, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	var j domain.Job
	if err := s.DB.WithContext(ctx).Select("id").Where("id = ?", id).First(&j).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	var out []domain.DurationChangeRequest
	if err := s.DB.WithContext(ctx).Preload("RequestedBy").
		Where("job_id = ?", id).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ResolveInput carries the PATCH body.
type ResolveInput struct {
	Status string `json:"status"`
}

// Resolve approves or denies a pending request. Approval writes the
// requested duration (floored at one day) onto the job in the same
// transaction that resolves the request.
func (s *Service) Resolve(ctx context.Context, requestID string, in ResolveInput) (*domain.DurationChangeRequest, error) {
	if in.Status != constants.DurationRequestApproved && in.Status != constants.DurationRequestDenied {
		return nil, ErrResolutionInvalid
	}
	id, err := uuid.Parse(requestID)
	if err != nil {
		return nil, ErrRequestNotFound
	}

	var r domain.DurationChangeRequest
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}
		if r.Status != constants.DurationRequestPending {
			return ErrAlreadyResolved
		}

		now := time.Now()
		r.Status = in.Status
		r.ResolvedAt = &now
		if err := tx.Save(&r).Error; err != nil {
			return err
		}

		if in.Status == constants.DurationRequestApproved {
			duration := r.RequestedDuration
			if duration < 1 {
				duration = 1
			}
			if err := tx.Model(&domain.Job{}).Where("id = ?", r.JobID).
				Update("duration", duration).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
