package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mywork-backend/internal/pkg/constants"
)

// User is a worker or admin account. Invited users are created without
// credentials; PasswordHash stays empty until one is set.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Phone        string    `gorm:"column:phone" json:"phone,omitempty"`
	Company      string    `gorm:"column:company" json:"company,omitempty"`
	Role         string    `gorm:"column:role;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
