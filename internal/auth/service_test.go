package auth

import (
	"testing"

	"mywork-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, password string) *domain.User {
	u := &domain.User{Email: email, Name: "Seeded"}
	if password != "" {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		u.PasswordHash = hash
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestLoginUser(t *testing.T) {
	db := setupAuthTest(t)
	seeded := seedUser(t, db, "admin@test.com", "hunter22")

	u, err := LoginUser(db, LoginInput{Email: "Admin@Test.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, u.ID)

	_, err = LoginUser(db, LoginInput{Email: "admin@test.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = LoginUser(db, LoginInput{Email: "ghost@test.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = LoginUser(db, LoginInput{Email: "", Password: ""})
	assert.ErrorIs(t, err, ErrEmailPasswordRequired)
}

func TestLoginUser_InvitedUserHasNoPassword(t *testing.T) {
	db := setupAuthTest(t)
	seedUser(t, db, "invited@test.com", "")

	_, err := LoginUser(db, LoginInput{Email: "invited@test.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestVerifyUser(t *testing.T) {
	_, err := VerifyUser(nil)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyUser("garbage")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = VerifyUser(map[string]interface{}{"name": "no id"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	u, err := VerifyUser(map[string]interface{}{
		"user_id": "abc", "name": "Crew", "email": "crew@test.com", "role": "user",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", u.UserID)
	assert.Equal(t, "Crew", u.Name)
	assert.Equal(t, "crew@test.com", u.Email)
	assert.Equal(t, "user", u.Role)
}
