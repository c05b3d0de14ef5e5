package mysql

import (
	"errors"

	"Supply_Library/internal/model"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB *gorm.DB
}

// Create 三道闸门和插入放在同一个事务里：
// 1. 邮箱对应的用户已是成员 → ErrAlreadyMember
// 2. 已有 pending 邀请 → ErrInvitationPending
// 3. 插入 pending 行并落事件
func (r *InvitationRepository) Create(inv *model.CommunityInvitation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.CommunityMember{}).
			Joins("JOIN profiles ON profiles.user_id = community_members.member_id").
			Where("community_members.community_id = ? AND profiles.email = ?", inv.CommunityID, inv.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyMember
		}

		if err := tx.Model(&model.CommunityInvitation{}).
			Where("community_id = ? AND email = ? AND status = ?", inv.CommunityID, inv.Email, model.InvitationPending).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrInvitationPending
		}

		inv.Status = model.InvitationPending
		if err := tx.Create(inv).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "invitation_created", inv.CommunityID, inv.InviterID, map[string]any{"email": inv.Email})
	})
}

func (r *InvitationRepository) FindByID(id uint64) (*model.CommunityInvitation, error) {
	var inv model.CommunityInvitation
	err := r.DB.First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &inv, err
}

func (r *InvitationRepository) ListByCommunity(communityID uint64) ([]model.CommunityInvitation, error) {
	var list []model.CommunityInvitation
	err := r.DB.Where("community_id = ?", communityID).Order("id DESC").Find(&list).Error
	return list, err
}

func (r *InvitationRepository) ListPendingByEmail(email string) ([]model.CommunityInvitation, error) {
	var list []model.CommunityInvitation
	err := r.DB.Where("email = ? AND status = ?", email, model.InvitationPending).
		Order("id DESC").Find(&list).Error
	return list, err
}

// Respond 状态迁移 + 接受时入社，单事务。
// 条件更新带 status=pending 谓词，重复响应命中 0 行即失败。
func (r *InvitationRepository) Respond(invitationID uint64, responder *model.Profile, accept bool) (*model.CommunityInvitation, error) {
	var inv model.CommunityInvitation
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&inv, invitationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if inv.Status != model.InvitationPending {
			return ErrInvitationClosed
		}
		if inv.Email != responder.Email {
			return ErrEmailMismatch
		}

		next := model.InvitationDeclined
		if accept {
			next = model.InvitationAccepted
		}
		res := tx.Model(&model.CommunityInvitation{}).
			Where("id = ? AND status = ?", invitationID, model.InvitationPending).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvitationClosed
		}
		inv.Status = next

		if !accept {
			return insertOutbox(tx, "invitation_declined", inv.CommunityID, responder.UserID, map[string]any{"email": inv.Email})
		}

		member := &model.CommunityMember{
			CommunityID: inv.CommunityID,
			MemberID:    responder.UserID,
			Role:        model.RoleMember,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		if err := adjustMemberCount(tx, inv.CommunityID, +1); err != nil {
			return err
		}
		return insertOutbox(tx, "invitation_accepted", inv.CommunityID, responder.UserID, map[string]any{"email": inv.Email})
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
