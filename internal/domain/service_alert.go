package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mywork-backend/internal/pkg/constants"
)

// ServiceAlert is an urgency-flagged issue report attached to a job.
// Creation may trigger an SMS to the assignee; that side effect never
// affects the stored row.
type ServiceAlert struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"column:job_id;type:uuid;not null;index" json:"jobId"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	Severity    string    `gorm:"column:severity;not null;default:normal" json:"severity"`
	SentAt      time.Time `gorm:"column:sent_at;not null" json:"sentAt"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a *ServiceAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Severity == "" {
		a.Severity = constants.SeverityNormal
	}
	if a.SentAt.IsZero() {
		a.SentAt = time.Now()
	}
	return nil
}
