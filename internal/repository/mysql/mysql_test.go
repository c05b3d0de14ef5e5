package mysql

import (
	"testing"

	"Supply_Library/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存库，单连接避免 :memory: 多连接各见各表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, userID uint64, username, email string) *model.Profile {
	t.Helper()
	p := &model.Profile{UserID: userID, Username: username, Email: email}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedCommunity(t *testing.T, db *gorm.DB, creatorID uint64, name string) *model.Community {
	t.Helper()
	repo := &CommunityRepository{DB: db}
	c, err := repo.Create(&model.Community{Name: name, CreatorID: creatorID})
	require.NoError(t, err)
	return c
}

func outboxEvents(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var events []string
	require.NoError(t, db.Model(&model.CommunityOutbox{}).Order("id ASC").Pluck("event_type", &events).Error)
	return events
}
