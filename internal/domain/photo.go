package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Photo is an uploaded image attached to a job. URL points under the
// public uploads path; Metadata carries size and content type captured
// at upload time.
type Photo struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID      `gorm:"column:job_id;type:uuid;not null;index" json:"jobId"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	URL       string         `gorm:"column:url;not null" json:"url"`
	Caption   string         `gorm:"column:caption" json:"caption,omitempty"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	Timestamp time.Time      `gorm:"column:timestamp;not null" json:"timestamp"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	return nil
}
