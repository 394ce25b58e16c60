package store_test

import (
	"fmt"
	"testing"
	"time"

	"heartlink/backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB spins up an isolated in-memory SQLite DB with migrations
// applied. Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(&models.User{}, &models.Match{}, &models.Message{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

// seedUser inserts a minimal valid account directly.
func seedUser(t *testing.T, db *gorm.DB, username string, role models.RoleID) {
	t.Helper()
	user := models.User{
		Username:     username,
		PasswordHash: "x",
		Name:         "User " + username,
		Birthday:     time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		Occupation:   "unemployed",
		RoleID:       role,
	}
	require.NoError(t, db.Create(&user).Error)
}
