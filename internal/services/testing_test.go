package services

import (
	"fmt"
	"strings"
	"testing"

	"vibelink-backend/internal/database"
	"vibelink-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, usernames ...string) []models.User {
	t.Helper()

	users := make([]models.User, len(usernames))
	for i, name := range usernames {
		users[i] = models.User{Username: name, DisplayName: name, PasswordHash: "x"}
		require.NoError(t, db.Create(&users[i]).Error)
	}
	return users
}

func participantIDs(users []models.User) []int64 {
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = int64(u.ID)
	}
	return ids
}
