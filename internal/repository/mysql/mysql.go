package mysql

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"Supply_Library/internal/model"
)

var DB *gorm.DB

func InitDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Community{},
		&model.CommunityMember{},
		&model.CommunityInvitation{},
		&model.Item{},
		&model.CommunityItem{},
		&model.CommunityOutbox{},
	)
}
