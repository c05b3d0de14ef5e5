package model

import "time"

// Profile 应用层身份，与 users 一一对应，首次社区操作时幂等创建
type Profile struct {
	UserID    uint64    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Email     string    `gorm:"index;size:64;not null" json:"email"`
	FullName  string    `gorm:"size:64" json:"full_name,omitempty"`
	AvatarURL string    `gorm:"size:255" json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
