package photos

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mywork-backend/internal/domain"
	"mywork-backend/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPhotosTest(t *testing.T) (*Service, *gorm.DB, *domain.User, *domain.Job, string) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.Photo{}))

	user := &domain.User{Email: "worker@test.com", Name: "Worker"}
	require.NoError(t, db.Create(user).Error)
	job := &domain.Job{
		Title: "Siding", ScheduledDate: time.Now(),
		AssignedToID: user.ID, CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(job).Error)

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	return &Service{DB: db, Store: store}, db, user, job, dir
}

func TestCreatePhoto_SavesFileAndMetadata(t *testing.T) {
	svc, _, user, job, dir := setupPhotosTest(t)

	photo, err := svc.Create(context.Background(), job.ID.String(), CreateInput{
		UserID:      user.ID.String(),
		Caption:     "north wall",
		FileName:    "north wall!.jpg",
		File:        strings.NewReader("fake image bytes"),
		Size:        16,
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(photo.URL, "/uploads/"))
	assert.True(t, strings.HasSuffix(photo.URL, "north_wall_.jpg"))
	assert.Equal(t, "north wall", photo.Caption)
	assert.Contains(t, string(photo.Metadata), `"contentType":"image/jpeg"`)
	assert.False(t, photo.Timestamp.IsZero())

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(photo.URL, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(stored))
}

func TestCreatePhoto_Validation(t *testing.T) {
	svc, _, user, job, _ := setupPhotosTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, job.ID.String(), CreateInput{UserID: user.ID.String()})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = svc.Create(ctx, job.ID.String(), CreateInput{
		UserEmail: "ghost@test.com", FileName: "x.jpg", File: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrMissingInput)

	_, err = svc.Create(ctx, "6f9619ff-8b86-d011-b42d-00c04fc964ff", CreateInput{
		UserID: user.ID.String(), FileName: "x.jpg", File: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestListPhotos_NewestFirst(t *testing.T) {
	svc, db, user, job, _ := setupPhotosTest(t)

	older := &domain.Photo{
		JobID: job.ID, UserID: user.ID, URL: "/uploads/old.jpg",
		Timestamp: time.Now().Add(-time.Hour),
	}
	newer := &domain.Photo{JobID: job.ID, UserID: user.ID, URL: "/uploads/new.jpg"}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	out, err := svc.List(context.Background(), job.ID.String())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "/uploads/new.jpg", out[0].URL)
	assert.Equal(t, "/uploads/old.jpg", out[1].URL)
	require.NotNil(t, out[0].User)
}
