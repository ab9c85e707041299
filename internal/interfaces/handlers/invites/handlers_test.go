package invites

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	invitesvc "mywork-backend/internal/application/invites"
	"mywork-backend/internal/domain"
	"mywork-backend/internal/pkg/response"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInvitesApp(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Invite{}))

	h := &Handlers{Service: &invitesvc.Service{DB: db, AppBaseURL: "http://localhost:3000"}}
	app := fiber.New()
	app.Post("/invites", h.Create)
	app.Get("/invites", h.ListPending)
	app.Post("/invites/accept", h.Accept)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload map[string]string) (int, map[string]interface{}) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestInviteFlow_HTTP(t *testing.T) {
	app, _ := setupInvitesApp(t)

	status, out := postJSON(t, app, "/invites", map[string]string{
		"email": "crew@test.com", "createdBy": "admin@test.com",
	})
	require.Equal(t, 200, status)

	data := out["data"].(map[string]interface{})
	link := data["inviteLink"].(string)
	invite := data["invite"].(map[string]interface{})
	token := invite["token"].(string)
	assert.Contains(t, link, "/accept-invite?token="+token)

	status, out = postJSON(t, app, "/invites/accept", map[string]string{
		"token": token, "name": "New Crew",
	})
	require.Equal(t, 200, status)
	user := out["data"].(map[string]interface{})
	assert.Equal(t, "crew@test.com", user["email"])
	assert.Equal(t, "user", user["role"])

	// Token is single-use
	status, out = postJSON(t, app, "/invites/accept", map[string]string{
		"token": token, "name": "Imposter",
	})
	assert.Equal(t, 400, status)
	errObj := out["error"].(map[string]interface{})
	assert.Equal(t, "Invite has already been used", errObj["message"])
}

func TestCreateInvite_HTTP_ExistingUser(t *testing.T) {
	app, db := setupInvitesApp(t)
	require.NoError(t, db.Create(&domain.User{Email: "taken@test.com", Name: "Taken"}).Error)

	status, _ := postJSON(t, app, "/invites", map[string]string{
		"email": "taken@test.com", "createdBy": "admin@test.com",
	})
	assert.Equal(t, 400, status)
}

func TestAcceptInvite_HTTP_Expired(t *testing.T) {
	app, db := setupInvitesApp(t)
	require.NoError(t, db.Create(&domain.Invite{
		Email: "late@test.com", Token: "stale", CreatedBy: "admin",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	status, _ := postJSON(t, app, "/invites/accept", map[string]string{
		"token": "stale", "name": "Late",
	})
	assert.Equal(t, 400, status)
}

func TestAcceptInvite_HTTP_UnknownToken(t *testing.T) {
	app, _ := setupInvitesApp(t)

	status, _ := postJSON(t, app, "/invites/accept", map[string]string{
		"token": "missing", "name": "X",
	})
	assert.Equal(t, 404, status)
}

func TestListPendingInvites_HTTP(t *testing.T) {
	app, db := setupInvitesApp(t)
	require.NoError(t, db.Create(&domain.Invite{
		Email: "crew@test.com", Token: "tok", CreatedBy: "admin",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}).Error)

	req := httptest.NewRequest("GET", "/invites", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var out response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	items := out.Data.([]interface{})
	require.Len(t, items, 1)
}
