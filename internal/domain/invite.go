package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mywork-backend/internal/pkg/constants"
)

// Invite is a time-boxed, single-use token authorizing creation of a new
// user account. One row per email while pending; re-inviting regenerates
// the token and expiry in place. Accepted rows persist as history.
type Invite struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email      string     `gorm:"column:email;not null;index" json:"email"`
	Token      string     `gorm:"column:token;not null;uniqueIndex" json:"token"`
	Status     string     `gorm:"column:status;not null;default:pending" json:"status"`
	CreatedBy  string     `gorm:"column:created_by;not null" json:"createdBy"`
	ExpiresAt  time.Time  `gorm:"column:expires_at;not null" json:"expiresAt"`
	AcceptedAt *time.Time `gorm:"column:accepted_at" json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (i *Invite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = constants.InvitePending
	}
	return nil
}
