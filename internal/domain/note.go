package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Note is an append-only comment on a job. Notes are never updated or
// deleted through the API; they only disappear with their job.
type Note struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID `gorm:"column:job_id;type:uuid;not null;index" json:"jobId"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null" json:"userId"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	IsPrivate bool      `gorm:"column:is_private;not null;default:false" json:"isPrivate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
