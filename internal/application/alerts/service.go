package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/constants"
	"mywork-backend/internal/sms"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrJobNotFound     = errors.New("Job not found")
	ErrTitleRequired   = errors.New("Alert title is required")
	ErrSeverityInvalid = errors.New("Invalid alert severity")
)

type Service struct {
	DB  *gorm.DB
	SMS sms.Sender
}

// CreateInput carries the POST body.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Create records the alert, then dispatches an SMS to the job assignee in
// the background. The SMS is fire-and-forget: its outcome never changes
// the response and failures only produce a warning log.
func (s *Service) Create(ctx context.Context, jobID string, in CreateInput) (*domain.ServiceAlert, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.Severity != "" && !constants.IsValidSeverity(in.Severity) {
		return nil, ErrSeverityInvalid
	}

	var job domain.Job
	if err := s.DB.WithContext(ctx).Preload("AssignedTo").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	alert := &domain.ServiceAlert{
		JobID:       id,
		Title:       in.Title,
		Description: in.Description,
		Severity:    in.Severity,
	}
	if err := s.DB.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, err
	}

	s.dispatchSMS(*alert, job)
	return alert, nil
}

// List returns the job's alerts newest first.
func (s *Service) List(ctx context.Context, jobID string) ([]domain.ServiceAlert, error) {
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
	var out []domain.ServiceAlert
	if err := s.DB.WithContext(ctx).Where("job_id = ?", id).Order("sent_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) dispatchSMS(alert domain.ServiceAlert, job domain.Job) {
	if s.SMS == nil || !s.SMS.Configured() {
		log.Warn().Str("job_id", job.ID.String()).Msg("SMS not configured - skipping alert SMS")
		return
	}
	if job.AssignedTo == nil || job.AssignedTo.Phone == "" {
		return
	}
	phone := job.AssignedTo.Phone
	details := alert.Description
	if details == "" {
		details = "N/A"
	}
	body := fmt.Sprintf("MyWork Alert: %s\nJob: %s\nSeverity: %s\nDetails: %s",
		alert.Title, job.Title, alert.Severity, details)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := s.SMS.Send(ctx, phone, body); err != nil {
			log.Warn().Err(err).Str("alert_id", alert.ID.String()).Msg("alert SMS failed")
			return
		}
		log.Info().Str("alert_id", alert.ID.String()).Msg("alert SMS sent")
	}()
}
