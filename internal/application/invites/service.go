package invites

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"mywork-backend/internal/application/emails"
	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/constants"
	"mywork-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const inviteExpiry = 7 * 24 * time.Hour

var (
	ErrFieldsRequired = errors.New("Email and createdBy are required")
	ErrEmailInvalid   = errors.New("Invalid email format")
	ErrUserExists     = errors.New("User already exists")
	ErrInviteNotFound = errors.New("Invalid or expired invite")
	ErrInviteUsed     = errors.New("Invite has already been used")
	ErrInviteExpired  = errors.New("Invite has expired")
	ErrNameRequired   = errors.New("Token and name are required")
)

type Service struct {
	DB         *gorm.DB
	Email      emails.Sender
	AppBaseURL string
}

// CreateInput carries the POST /invites body.
type CreateInput struct {
	Email     string `json:"email"`
	CreatedBy string `json:"createdBy"`
}

// Create issues an invite for the email, or regenerates the token and
// expiry of an existing pending invite in place so at most one pending
// row exists per email. The invite email goes out after the row is
// persisted and its outcome never affects the response.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Invite, error) {
	if in.Email == "" || in.CreatedBy == "" {
		return nil, ErrFieldsRequired
	}
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrEmailInvalid
	}
	email := validation.NormalizeEmail(in.Email)

	var existingUser domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existingUser).Error; err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	token := randomHex(32)
	expiresAt := time.Now().Add(inviteExpiry)

	var invite domain.Invite
	err := s.DB.WithContext(ctx).
		Where("email = ? AND status = ?", email, constants.InvitePending).
		First(&invite).Error
	switch {
	case err == nil:
		invite.Token = token
		invite.ExpiresAt = expiresAt
		if err := s.DB.WithContext(ctx).Save(&invite).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		invite = domain.Invite{
			Email:     email,
			Token:     token,
			CreatedBy: in.CreatedBy,
			ExpiresAt: expiresAt,
		}
		if err := s.DB.WithContext(ctx).Create(&invite).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.dispatchEmail(invite)
	return &invite, nil
}

// ListPending returns pending invites newest first.
func (s *Service) ListPending(ctx context.Context) ([]domain.Invite, error) {
	var out []domain.Invite
	if err := s.DB.WithContext(ctx).
		Where("status = ?", constants.InvitePending).
		Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// AcceptInput carries the POST /invites/accept body.
type AcceptInput struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Accept consumes the token exactly once: the invite must be pending and
// unexpired and the email still unclaimed. On success a user with role
// "user" is created and the invite marked accepted, atomically, so a
// race against direct user creation cannot mint a duplicate account.
func (s *Service) Accept(ctx context.Context, in AcceptInput) (*domain.User, error) {
	if in.Token == "" || in.Name == "" {
		return nil, ErrNameRequired
	}

	var created domain.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invite domain.Invite
		if err := tx.Where("token = ?", in.Token).First(&invite).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInviteNotFound
			}
			return err
		}
		if invite.Status != constants.InvitePending {
			return ErrInviteUsed
		}
		if time.Now().After(invite.ExpiresAt) {
			return ErrInviteExpired
		}

		var existing domain.User
		if err := tx.Where("email = ?", invite.Email).First(&existing).Error; err == nil {
			return ErrUserExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created = domain.User{
			Email: invite.Email,
			Name:  in.Name,
			Role:  constants.RoleUser,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		now := time.Now()
		invite.Status = constants.InviteAccepted
		invite.AcceptedAt = &now
		return tx.Save(&invite).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// InviteLink builds the accept-invite URL for a token.
func (s *Service) InviteLink(token string) string {
	return s.AppBaseURL + "/accept-invite?token=" + token
}

func (s *Service) dispatchEmail(invite domain.Invite) {
	link := s.InviteLink(invite.Token)
	if s.Email == nil {
		log.Info().Str("email", invite.Email).Str("link", link).Msg("email sender not configured - invite link logged only")
		return
	}
	email := invite.Email
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := s.Email.SendInvite(ctx, email, link); err != nil {
			log.Warn().Err(err).Str("email", email).Msg("invite email failed")
			return
		}
		log.Info().Str("email", email).Msg("invite email sent")
	}()
}

func randomHex(n int) string {
	b := make([]byte, n)
	rand.Read(b)
	return hex.EncodeToString(b)
}
