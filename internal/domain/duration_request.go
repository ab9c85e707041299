package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mywork-backend/internal/pkg/constants"
)

// DurationChangeRequest records a worker asking for a different job
// duration. Pending requests surface on the calendar as a flag on the
// job; approval writes the new duration onto the job itself.
type DurationChangeRequest struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID             uuid.UUID  `gorm:"column:job_id;type:uuid;not null;index" json:"jobId"`
	RequestedByID     uuid.UUID  `gorm:"column:requested_by_id;type:uuid;not null" json:"requestedById"`
	CurrentDuration   int        `gorm:"column:current_duration;not null" json:"currentDuration"`
	RequestedDuration int        `gorm:"column:requested_duration;not null" json:"requestedDuration"`
	Reason            string     `gorm:"column:reason" json:"reason,omitempty"`
	Status            string     `gorm:"column:status;not null;default:pending" json:"status"`
	ResolvedAt        *time.Time `gorm:"column:resolved_at" json:"resolvedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`

	RequestedBy *User `gorm:"foreignKey:RequestedByID" json:"requestedBy,omitempty"`
}

func (r *DurationChangeRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = constants.DurationRequestPending
	}
	return nil
}
