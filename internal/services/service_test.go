package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/restomenu/restomenu/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user, err := NewUserService(db).Create("Test User", email, "https://example.com/pic.png", nil)
	require.NoError(t, err)
	return user
}
