package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"messenger-bot/internal/api"
	"messenger-bot/internal/models"
	"messenger-bot/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRouter(t *testing.T) (*gin.Engine, *store.Users) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	users := store.NewUsers(db)
	handler := api.NewUserHandler(users, nil)

	r := gin.New()
	r.GET("/api/users", handler.GetUsers)
	r.PUT("/api/users/:id/status", handler.UpdateStatus)
	r.GET("/api/users/export", handler.ExportUsers)
	return r, users
}

func seedUser(t *testing.T, users *store.Users, psid, name string) *models.User {
	t.Helper()
	user := &models.User{PSID: psid, Name: name, Status: models.StatusPending}
	require.NoError(t, users.Create(user))
	return user
}

func TestGetUsersEmptyIsArray(t *testing.T) {
	r, _ := newRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetUsersReturnsRecords(t *testing.T) {
	r, users := newRouter(t)
	seedUser(t, users, "psid-1", "Alice")
	seedUser(t, users, "psid-2", "bob")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func putStatus(r *gin.Engine, id string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+id+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateStatusMissingStatus(t *testing.T) {
	r, users := newRouter(t)
	user := seedUser(t, users, "psid-1", "Alice")

	w := putStatus(r, fmt.Sprint(user.ID), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Status is required")

	w = putStatus(r, fmt.Sprint(user.ID), ``)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusUnknownUser(t *testing.T) {
	r, _ := newRouter(t)

	w := putStatus(r, "9999", `{"status":"active"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	w = putStatus(r, "not-a-number", `{"status":"active"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusSuccessAndVisibleInList(t *testing.T) {
	r, users := newRouter(t)
	user := seedUser(t, users, "psid-1", "Alice")

	w := putStatus(r, fmt.Sprint(user.ID), `{"status":"active"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User status updated successfully")

	list := httptest.NewRecorder()
	r.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	var got []models.User
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusActive, got[0].Status)
}

func TestUpdateStatusIdempotent(t *testing.T) {
	r, users := newRouter(t)
	user := seedUser(t, users, "psid-1", "Alice")

	first := putStatus(r, fmt.Sprint(user.ID), `{"status":"active"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := putStatus(r, fmt.Sprint(user.ID), `{"status":"active"}`)
	assert.Equal(t, http.StatusOK, second.Code)

	found, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, found.Status)
}

func TestExportUsersCSV(t *testing.T) {
	r, users := newRouter(t)
	alice := seedUser(t, users, "psid-1", "Alice")
	alice.Address = "1 Main St, Springfield"
	require.NoError(t, users.Save(alice))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/export", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "users.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "PSID,Name,Email,Phone,Address,Attachment URL,Status,Created At", lines[0])
	assert.Contains(t, lines[1], "psid-1")
	// Addresses with commas stay one CSV field
	assert.Contains(t, lines[1], `"1 Main St, Springfield"`)
}
