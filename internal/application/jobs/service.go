package jobs

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
	ErrJobNotFound     = errors.New("Job not found")
	ErrTitleRequired   = errors.New("Title is required")
	ErrDateRequired    = errors.New("Scheduled date is required")
	ErrDateInvalid     = errors.New("Invalid scheduled date")
	ErrStatusInvalid   = errors.New("Invalid job status")
	ErrUsersUnresolved = errors.New("Missing assignedTo or createdBy user. Provide valid ids or emails.")
)

type Service struct {
	DB *gorm.DB
}

// LineItemInput is a line item as submitted on create/update. Quantity is
// clamped to 1 and total recomputed server-side on every write.
type LineItemInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Rate        float64 `json:"rate"`
	Status      string  `json:"status"`
}

func (in LineItemInput) toModel(jobID uuid.UUID) domain.LineItem {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	title := in.Title
	if title == "" {
		title = "Line item"
	}
	status := in.Status
	if status == "" {
		status = constants.LineItemPending
	}
	return domain.LineItem{
		JobID:       jobID,
		Title:       title,
		Description: in.Description,
		Quantity:    qty,
		Rate:        in.Rate,
		Total:       float64(qty) * in.Rate,
		Status:      status,
	}
}

// JobWithFlag decorates a job with the derived pending-request marker the
// calendar renders.
type JobWithFlag struct {
	domain.Job
	HasPendingDurationRequest bool `json:"hasPendingDurationRequest"`
}

// ListInput filters the calendar query.
type ListInput struct {
	UserID string
	Status string
}

// List returns jobs ordered by scheduled date ascending, optionally
// filtered by assignee and status, each annotated with whether a pending
// duration change request exists.
func (s *Service) List(ctx context.Context, in ListInput) ([]JobWithFlag, error) {
	q := s.DB.WithContext(ctx).Model(&domain.Job{}).
		Preload("AssignedTo").
		Preload("LineItems").
		Preload("Notes.User").
		Preload("Photos").
		Preload("ServiceAlerts").
		Preload("DurationChangeRequests", "status = ?", constants.DurationRequestPending)

	if in.UserID != "" {
		uid, err := uuid.Parse(in.UserID)
		if err != nil {
			return nil, ErrUsersUnresolved
		}
		q = q.Where("assigned_to_id = ?", uid)
	}
	if in.Status != "" {
		if !constants.IsValidJobStatus(in.Status) {
			return nil, ErrStatusInvalid
		}
		q = q.Where("status = ?", in.Status)
	}

	var jobsList []domain.Job
	if err := q.Order("scheduled_date ASC").Find(&jobsList).Error; err != nil {
		return nil, err
	}

	out := make([]JobWithFlag, 0, len(jobsList))
	for _, j := range jobsList {
		out = append(out, JobWithFlag{
			Job:                       j,
			HasPendingDurationRequest: len(j.DurationChangeRequests) > 0,
		})
	}
	return out, nil
}

// Get returns one job with every nested collection loaded.
func (s *Service) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}
	var j domain.Job
	err = s.DB.WithContext(ctx).
		Preload("AssignedTo").
		Preload("CreatedBy").
		Preload("LineItems").
		Preload("Notes.User").
		Preload("Photos.User").
		Preload("ServiceAlerts").
		Preload("DurationChangeRequests").
		Where("id = ?", id).First(&j).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &j, nil
}

// CreateInput carries the POST /jobs body. Assignee and creator each
// resolve by id or by email; both must resolve.
type CreateInput struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	ScheduledDate   string          `json:"scheduledDate"`
	Duration        int             `json:"duration"`
	CustomerName    string          `json:"customerName"`
	CustomerAddress string          `json:"customerAddress"`
	CustomerPhone   string          `json:"customerPhone"`
	AssignedToID    string          `json:"assignedToId"`
	AssignedToEmail string          `json:"assignedToEmail"`
	CreatedByID     string          `json:"createdById"`
	CreatedByEmail  string          `json:"createdByEmail"`
	LineItems       []LineItemInput `json:"lineItems"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Job, error) {
	if in.Title == "" {
		return nil, ErrTitleRequired
	}
	if in.ScheduledDate == "" {
		return nil, ErrDateRequired
	}
	scheduled, err := parseDate(in.ScheduledDate)
	if err != nil {
		return nil, ErrDateInvalid
	}
	if in.Status != "" && !constants.IsValidJobStatus(in.Status) {
		return nil, ErrStatusInvalid
	}

	assignee, err := users.Resolve(ctx, s.DB, in.AssignedToID, in.AssignedToEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUsersUnresolved
		}
		return nil, err
	}
	creator, err := users.Resolve(ctx, s.DB, in.CreatedByID, in.CreatedByEmail)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrUsersUnresolved
		}
		return nil, err
	}

	duration := in.Duration
	if duration < 1 {
		duration = 1
	}

	j := &domain.Job{
		Title:           in.Title,
		Description:     in.Description,
		Status:          in.Status,
		ScheduledDate:   scheduled,
		Duration:        duration,
		CustomerName:    in.CustomerName,
		CustomerAddress: in.CustomerAddress,
		CustomerPhone:   in.CustomerPhone,
		AssignedToID:    assignee.ID,
		CreatedByID:     creator.ID,
	}
	for _, item := range in.LineItems {
		j.LineItems = append(j.LineItems, item.toModel(uuid.Nil))
	}
	if err := s.DB.WithContext(ctx).Create(j).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, j.ID.String())
}

// UpdateInput carries the PUT /jobs/:jobId body. Pointer fields make the
// presence check explicit: empty string and zero are settable values.
// A nil LineItems leaves items untouched; an empty slice clears them.
type UpdateInput struct {
	Title           *string          `json:"title"`
	Description     *string          `json:"description"`
	Status          *string          `json:"status"`
	ScheduledDate   *string          `json:"scheduledDate"`
	Duration        *int             `json:"duration"`
	CustomerName    *string          `json:"customerName"`
	CustomerAddress *string          `json:"customerAddress"`
	CustomerPhone   *string          `json:"customerPhone"`
	LineItems       *[]LineItemInput `json:"lineItems"`
}

// Update applies the present fields and, when a line item array is
// supplied, replaces the job's line item set atomically: delete all,
// bulk-insert the new set with recomputed totals, one transaction.
func (s *Service) Update(ctx context.Context, jobID string, in UpdateInput) (*domain.Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, ErrJobNotFound
	}

	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		if !constants.IsValidJobStatus(*in.Status) {
			return nil, ErrStatusInvalid
		}
		fields["status"] = *in.Status
	}
	if in.ScheduledDate != nil {
		scheduled, err := parseDate(*in.ScheduledDate)
		if err != nil {
			return nil, ErrDateInvalid
		}
		fields["scheduled_date"] = scheduled
	}
	if in.Duration != nil {
		d := *in.Duration
		if d < 1 {
			d = 1
		}
		fields["duration"] = d
	}
	if in.CustomerName != nil {
		fields["customer_name"] = *in.CustomerName
	}
	if in.CustomerAddress != nil {
		fields["customer_address"] = *in.CustomerAddress
	}
	if in.CustomerPhone != nil {
		fields["customer_phone"] = *in.CustomerPhone
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Job
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&domain.Job{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		if in.LineItems != nil {
			if err := tx.Where("job_id = ?", id).Delete(&domain.LineItem{}).Error; err != nil {
				return err
			}
			if len(*in.LineItems) > 0 {
				items := make([]domain.LineItem, 0, len(*in.LineItems))
				for _, item := range *in.LineItems {
					items = append(items, item.toModel(id))
				}
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, jobID)
}

// Delete removes the job and every owned sub-entity in one transaction,
// so the cascade holds regardless of database foreign key enforcement.
func (s *Service) Delete(ctx context.Context, jobID string) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return ErrJobNotFound
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Job
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}
		for _, child := range []interface{}{
			&domain.LineItem{}, &domain.Note{}, &domain.Photo{},
			&domain.ServiceAlert{}, &domain.DurationChangeRequest{},
		} {
			if err := tx.Where("job_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&domain.Job{}).Error
	})
}

// parseDate accepts a bare calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
