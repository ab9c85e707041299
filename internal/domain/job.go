package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mywork-backend/internal/pkg/constants"
)

// Job is a unit of scheduled work assigned to a worker, spanning one or
// more days on the calendar. Deleting a job removes every owned sub-entity.
type Job struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"column:title;not null" json:"title"`
	Description     string    `gorm:"column:description" json:"description"`
	Status          string    `gorm:"column:status;not null;default:pending" json:"status"`
	ScheduledDate   time.Time `gorm:"column:scheduled_date;not null;index" json:"scheduledDate"`
	Duration        int       `gorm:"column:duration;not null;default:1" json:"duration"`
	CustomerName    string    `gorm:"column:customer_name" json:"customerName"`
	CustomerAddress string    `gorm:"column:customer_address" json:"customerAddress"`
	CustomerPhone   string    `gorm:"column:customer_phone" json:"customerPhone"`
	AssignedToID    uuid.UUID `gorm:"column:assigned_to_id;type:uuid;not null;index" json:"assignedToId"`
	CreatedByID     uuid.UUID `gorm:"column:created_by_id;type:uuid;not null" json:"createdById"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	AssignedTo *User `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	CreatedBy  *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	LineItems              []LineItem              `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"lineItems"`
	Notes                  []Note                  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Photos                 []Photo                 `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"photos,omitempty"`
	ServiceAlerts          []ServiceAlert          `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"serviceAlerts,omitempty"`
	DurationChangeRequests []DurationChangeRequest `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"durationChangeRequests,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Status == "" {
		j.Status = constants.JobPending
	}
	if j.Duration < 1 {
		j.Duration = 1
	}
	return nil
}

// LineItem is a billable sub-task of a job. Total is computed from
// quantity and rate at write time and never recomputed afterwards.
type LineItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"column:job_id;type:uuid;not null;index" json:"jobId"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Quantity    int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Rate        float64   `gorm:"column:rate;not null;default:0" json:"rate"`
	Total       float64   `gorm:"column:total;not null;default:0" json:"total"`
	Status      string    `gorm:"column:status;not null;default:pending" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}
