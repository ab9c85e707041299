package photos

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	photosvc "mywork-backend/internal/application/photos"
	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/response"
	"mywork-backend/internal/storage"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPhotosApp(t *testing.T) (*fiber.App, *domain.User, *domain.Job) {
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

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	h := &Handlers{Service: &photosvc.Service{DB: db, Store: store}}
	app := fiber.New()
	app.Get("/jobs/:jobId/photos", h.List)
	app.Post("/jobs/:jobId/photos", h.Create)
	return app, user, job
}

func multipartUpload(t *testing.T, fields map[string]string, fileField, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile(fileField, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestUploadPhoto_HTTP(t *testing.T) {
	app, user, job := setupPhotosApp(t)

	buf, contentType := multipartUpload(t, map[string]string{
		"userId":  user.ID.String(),
		"caption": "north wall",
	}, "file", "wall.jpg", "fake image bytes")

	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/photos", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 201, resp.StatusCode)

	var out response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	data := out.Data.(map[string]interface{})
	assert.Contains(t, data["url"].(string), "/uploads/")
	assert.Equal(t, "north wall", data["caption"])
}

func TestUploadPhoto_HTTP_NoFile(t *testing.T) {
	app, user, job := setupPhotosApp(t)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	require.NoError(t, w.WriteField("userId", user.ID.String()))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/photos", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUploadPhoto_HTTP_JobNotFound(t *testing.T) {
	app, user, _ := setupPhotosApp(t)

	buf, contentType := multipartUpload(t, map[string]string{
		"userId": user.ID.String(),
	}, "file", "wall.jpg", "x")

	req := httptest.NewRequest("POST", "/jobs/6f9619ff-8b86-d011-b42d-00c04fc964ff/photos", buf)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestListPhotos_HTTP(t *testing.T) {
	app, user, job := setupPhotosApp(t)

	buf, contentType := multipartUpload(t, map[string]string{
		"userId": user.ID.String(),
	}, "file", "one.jpg", "x")
	req := httptest.NewRequest("POST", "/jobs/"+job.ID.String()+"/photos", buf)
	req.Header.Set("Content-Type", contentType)
	_, err := app.Test(req)
	require.NoError(t, err)

	listResp, err := app.Test(httptest.NewRequest("GET", "/jobs/"+job.ID.String()+"/photos", nil))
	require.NoError(t, err)
	require.Equal(t, 200, listResp.StatusCode)

	var out response.SuccessBody
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&out))
	items := out.Data.([]interface{})
	require.Len(t, items, 1)
}
