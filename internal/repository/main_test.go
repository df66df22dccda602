package repository

import (
	"testing"
	"time"

	"blogly/internal/config"
	"blogly/internal/database"
	"blogly/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB returns a migrated in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Env:                      "test",
		DBDriver:                 config.DriverSQLite,
		DBSQLitePath:             ":memory:",
		DBConnMaxLifetimeMinutes: 5,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// setupMockDB returns a postgres-dialect gorm.DB backed by sqlmock.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func seedUser(t *testing.T, db *gorm.DB, userName string) *models.User {
	t.Helper()
	u := &models.User{UserName: userName, FirstName: "First " + userName, LastName: "Last " + userName}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, userID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	p := &models.Post{Title: title, Content: "content of " + title, UserID: userID, CreatedAt: createdAt}
	require.NoError(t, db.Omit("User", "Tags").Create(p).Error)
	return p
}

func tagPostIDs(t *testing.T, db *gorm.DB, tagID uint) []uint {
	t.Helper()
	var ids []uint
	require.NoError(t, db.Model(&models.PostTag{}).Where("tag_id = ?", tagID).Order("post_id ASC").Pluck("post_id", &ids).Error)
	return ids
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
