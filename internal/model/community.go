package model

import "time"

const (
	RoleMember = 0
	RoleAdmin  = 1
)

type Community struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	AvatarURL   string    `gorm:"size:255" json:"avatar_url,omitempty"`
	CreatorID   uint64    `gorm:"not null;index" json:"created_by"`
	MemberCount int64     `gorm:"not null;default:0" json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommunityMember struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"not null;index;uniqueIndex:uk_community_member" json:"community_id"`
	MemberID    uint64    `gorm:"not null;index;uniqueIndex:uk_community_member" json:"member_id"`
	Role        int       `gorm:"not null;default:0" json:"-"` // 0=member, 1=admin
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleName 序列化为 admin/member
func (m CommunityMember) RoleName() string {
	if m.Role == RoleAdmin {
		return "admin"
	}
	return "member"
}
