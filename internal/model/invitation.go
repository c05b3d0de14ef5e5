package model

import "time"

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationDeclined = "declined"
)

// CommunityInvitation 按邮箱邀请；受邀者此时可能还没有账号。
// pending → accepted/declined，两个终态都不可再变。
type CommunityInvitation struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CommunityID uint64    `gorm:"not null;index;index:idx_invite_comm_email,priority:1" json:"community_id"`
	InviterID   uint64    `gorm:"not null;index" json:"inviter_id"`
	Email       string    `gorm:"size:64;not null;index:idx_invite_comm_email,priority:2" json:"email"`
	Status      string    `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (CommunityInvitation) TableName() string { return "community_invitations" }
