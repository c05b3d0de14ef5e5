package service

import (
	"testing"

	"Supply_Library/internal/model"
	"Supply_Library/internal/repository/mysql"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	rds "Supply_Library/internal/repository/redis"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

func newTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, rds.Init(mr.Addr(), "", 0))
	t.Cleanup(func() { _ = rds.Close() })
	return mr
}

func seedUser(t *testing.T, db *gorm.DB, username, email, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Username: username, Email: email, Password: string(hash)}
	require.NoError(t, db.Create(u).Error)
	return u
}
