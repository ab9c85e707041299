package users

import (
	"context"
	"errors"

	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/constants"
	"mywork-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("User not found")
	ErrEmailInvalid = errors.New("Invalid email format")
)

type Service struct {
	DB *gorm.DB
}

// Resolve looks a user up by id when given, otherwise by email. Handlers
// across jobs, notes and photos accept either form of identity.
func (s *Service) Resolve(ctx context.Context, id, email string) (*domain.User, error) {
	return Resolve(ctx, s.DB, id, email)
}

// Resolve is the package-level form shared by other services.
func Resolve(ctx context.Context, db *gorm.DB, id, email string) (*domain.User, error) {
	var u domain.User
	switch {
	case id != "":
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, ErrUserNotFound
		}
		if err := db.WithContext(ctx).Where("id = ?", uid).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	case email != "":
		if err := db.WithContext(ctx).Where("email = ?", validation.NormalizeEmail(email)).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	default:
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// FindOrCreateInput carries the POST /users body.
type FindOrCreateInput struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// FindOrCreate returns the existing user for the email or creates one.
// The second return reports whether a row was created.
func (s *Service) FindOrCreate(ctx context.Context, in FindOrCreateInput) (*domain.User, bool, error) {
	if in.Email == "" || !validation.IsValidEmail(in.Email) {
		return nil, false, ErrEmailInvalid
	}
	email := validation.NormalizeEmail(in.Email)

	var existing domain.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	role := in.Role
	if !constants.IsValidRole(role) {
		role = constants.RoleUser
	}
	name := in.Name
	if name == "" {
		name = email
	}
	u := &domain.User{
		Email:   email,
		Name:    name,
		Phone:   in.Phone,
		Company: in.Company,
		Role:    role,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, false, err
	}
	return u, true, nil
}
