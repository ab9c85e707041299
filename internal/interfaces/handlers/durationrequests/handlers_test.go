package durationrequests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	drsvc "mywork-backend/internal/application/durationrequests"
	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/constants"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDurationApp(t *testing.T) (*fiber.App, *gorm.DB, *domain.User, *domain.Job) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.DurationChangeRequest{}))

	user := &domain.User{Email: "worker@test.com", Name: "Worker"}
	require.NoError(t, db.Create(user).Error)
	job := &domain.Job{
		Title: "Paving", ScheduledDate: time.Now(), Duration: 2,
		AssignedToID: user.ID, CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(job).Error)

	h := &Handlers{Service: &drsvc.Service{DB: db}}
	app := fiber.New()
	app.Get("/jobs/:jobId/duration-requests", h.List)
	app.Post("/jobs/:jobId/duration-requests", h.Create)
	app.Patch("/duration-requests/:id", h.Resolve)
	return app, db, user, job
}

func TestDurationRequestFlow_HTTP(t *testing.T) {
	app, db, user, job := setupDurationApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"userId": user.ID.String(), "requestedDuration": 4, "reason": "Rain delays",
	})
	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/duration-requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data := out["data"].(map[string]interface{})
	requestID := data["id"].(string)
	assert.Equal(t, float64(2), data["currentDuration"])

	patchBody, _ := json.Marshal(map[string]string{"status": constants.DurationRequestApproved})
	patchReq := httptest.NewRequest("PATCH", "/duration-requests/"+requestID, bytes.NewReader(patchBody))
	patchReq.Header.Set("Content-Type", "application/json")
	patchResp, err := app.Test(patchReq)
	require.NoError(t, err)
	require.Equal(t, 200, patchResp.StatusCode)

	var stored domain.Job
	require.NoError(t, db.Where("id = ?", job.ID).First(&stored).Error)
	assert.Equal(t, 4, stored.Duration)

	// Resolving again is rejected
	again := httptest.NewRequest("PATCH", "/duration-requests/"+requestID, bytes.NewReader(patchBody))
	again.Header.Set("Content-Type", "application/json")
	againResp, err := app.Test(again)
	require.NoError(t, err)
	assert.Equal(t, 400, againResp.StatusCode)
}

func TestCreateDurationRequest_HTTP_InvalidDuration(t *testing.T) {
	app, _, user, job := setupDurationApp(t)

	body, _ := json.Marshal(map[string]interface{}{
		"userId": user.ID.String(), "requestedDuration": 0,
	})
	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/duration-requests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestResolveDurationRequest_HTTP_InvalidStatus(t *testing.T) {
	app, db, user, job := setupDurationApp(t)

	r := &domain.DurationChangeRequest{
		JobID: job.ID, RequestedByID: user.ID, CurrentDuration: 2, RequestedDuration: 3,
	}
	require.NoError(t, db.Create(r).Error)

	body, _ := json.Marshal(map[string]string{"status": "maybe"})
	req := httptest.NewRequest("PATCH", "/duration-requests/"+r.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
