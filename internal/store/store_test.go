package store

import (
	"path/filepath"
	"testing"

	"messenger-bot/internal/bot"
	"messenger-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ConversationSession{}))
	return db
}

func TestUsersCreateAndFind(t *testing.T) {
	users := NewUsers(newTestDB(t))

	user := &models.User{PSID: "psid-1", Name: "Alice", Status: models.StatusPending}
	require.NoError(t, users.Create(user))
	assert.NotZero(t, user.ID)

	found, err := users.FindByPSID("psid-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, models.StatusPending, found.Status)

	byID, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "psid-1", byID.PSID)
}

func TestUsersFindByPSIDNotFound(t *testing.T) {
	users := NewUsers(newTestDB(t))

	_, err := users.FindByPSID("nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUsersCreateDuplicateKeepsOneRow(t *testing.T) {
	users := NewUsers(newTestDB(t))

	first := &models.User{PSID: "psid-1", Name: "Alice"}
	require.NoError(t, users.Create(first))

	// A lost race adopts the existing row instead of inserting a second one
	second := &models.User{PSID: "psid-1", Name: "Late Alice"}
	require.NoError(t, users.Create(second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Alice", second.Name)

	all, err := users.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUsersSaveRoundtrip(t *testing.T) {
	users := NewUsers(newTestDB(t))

	user := &models.User{PSID: "psid-1", Name: "Alice"}
	require.NoError(t, users.Create(user))

	user.Email = "alice@example.com"
	user.Phone = "555-1234"
	require.NoError(t, users.Save(user))

	found, err := users.FindByPSID("psid-1")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, "555-1234", found.Phone)
}

func TestUsersListNeverNil(t *testing.T) {
	users := NewUsers(newTestDB(t))

	all, err := users.List()
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestMemorySessions(t *testing.T) {
	sessions := NewMemorySessions()

	assert.Equal(t, bot.PhaseStart, sessions.Get("psid-1"))

	sessions.Set("psid-1", bot.PhaseAwaitingEmail)
	assert.Equal(t, bot.PhaseAwaitingEmail, sessions.Get("psid-1"))
	assert.Equal(t, bot.PhaseStart, sessions.Get("psid-2"))

	sessions.Clear("psid-1")
	assert.Equal(t, bot.PhaseStart, sessions.Get("psid-1"))
}

func TestDBSessions(t *testing.T) {
	sessions := NewDBSessions(newTestDB(t))

	assert.Equal(t, bot.PhaseStart, sessions.Get("psid-1"))

	sessions.Set("psid-1", bot.PhaseAwaitingEmail)
	assert.Equal(t, bot.PhaseAwaitingEmail, sessions.Get("psid-1"))

	// Upsert on the same sender replaces the phase
	sessions.Set("psid-1", bot.PhaseAwaitingPhone)
	assert.Equal(t, bot.PhaseAwaitingPhone, sessions.Get("psid-1"))

	sessions.Clear("psid-1")
	assert.Equal(t, bot.PhaseStart, sessions.Get("psid-1"))
}
