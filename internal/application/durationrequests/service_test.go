package durationrequests

import (
	"context"
	"testing"
	"time"

	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDurationTest(t *testing.T) (*Service, *gorm.DB, *domain.User, *domain.Job) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.DurationChangeRequest{}))

	user := &domain.User{Email: "worker@test.com", Name: "Worker"}
	require.NoError(t, db.Create(user).Error)
	job := &domain.Job{
		Title: "Landscaping", ScheduledDate: time.Now(), Duration: 2,
		AssignedToID: user.ID, CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(job).Error)

	return &Service{DB: db}, db, user, job
}

func TestCreateRequest_CapturesCurrentDuration(t *testing.T) {
	svc, _, user, job := setupDurationTest(t)

	r, err := svc.Create(context.Background(), job.ID.String(), CreateInput{
		UserID: user.ID.String(), RequestedDuration: 5, Reason: "Ground is frozen",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.CurrentDuration)
	assert.Equal(t, 5, r.RequestedDuration)
	assert.Equal(t, constants.DurationRequestPending, r.Status)
	assert.Nil(t, r.ResolvedAt)
	require.NotNil(t, r.RequestedBy)
	assert.Equal(t, user.ID, r.RequestedBy.ID)
}

func TestCreateRequest_Validation(t *testing.T) {
	svc, _, user, job := setupDurationTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, job.ID.String(), CreateInput{UserID: user.ID.String(), RequestedDuration: 0})
	assert.ErrorIs(t, err, ErrDurationInvalid)

	_, err = svc.Create(ctx, job.ID.String(), CreateInput{UserEmail: "ghost@test.com", RequestedDuration: 3})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Create(ctx, "6f9619ff-8b86-d011-b42d-00c04fc964ff", CreateInput{UserID: user.ID.String(), RequestedDuration: 3})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestResolve_ApproveUpdatesJobDuration(t *testing.T) {
	svc, db, user, job := setupDurationTest(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, job.ID.String(), CreateInput{UserID: user.ID.String(), RequestedDuration: 5})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, r.ID.String(), ResolveInput{Status: constants.DurationRequestApproved})
	require.NoError(t, err)
	assert.Equal(t, constants.DurationRequestApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	var stored domain.Job
	require.NoError(t, db.Where("id = ?", job.ID).First(&stored).Error)
	assert.Equal(t, 5, stored.Duration)

	// Already resolved
	_, err = svc.Resolve(ctx, r.ID.String(), ResolveInput{Status: constants.DurationRequestDenied})
	assert.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolve_DenyLeavesJobUntouched(t *testing.T) {
	svc, db, user, job := setupDurationTest(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, job.ID.String(), CreateInput{UserID: user.ID.String(), RequestedDuration: 9})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, r.ID.String(), ResolveInput{Status: constants.DurationRequestDenied})
	require.NoError(t, err)
	assert.Equal(t, constants.DurationRequestDenied, resolved.Status)

	var stored domain.Job
	require.NoError(t, db.Where("id = ?", job.ID).First(&stored).Error)
	assert.Equal(t, 2, stored.Duration)
}

func TestResolve_Validation(t *testing.T) {
	svc, _, user, job := setupDurationTest(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, job.ID.String(), CreateInput{UserID: user.ID.String(), RequestedDuration: 3})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, r.ID.String(), ResolveInput{Status: "maybe"})
	assert.ErrorIs(t, err, ErrResolutionInvalid)

	_, err = svc.Resolve(ctx, "6f9619ff-8b86-d011-b42d-00c04fc964ff", ResolveInput{Status: constants.DurationRequestApproved})
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestListRequests_NewestFirst(t *testing.T) {
	svc, db, user, job := setupDurationTest(t)

	older := &domain.DurationChangeRequest{
		JobID: job.ID, RequestedByID: user.ID, CurrentDuration: 2, RequestedDuration: 3,
		Reason: "old", CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := &domain.DurationChangeRequest{
		JobID: job.ID, RequestedByID: user.ID, CurrentDuration: 2, RequestedDuration: 4,
		Reason: "new",
	}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	out, err := svc.List(context.Background(), job.ID.String())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].Reason)
	assert.Equal(t, "old", out[1].Reason)
}
