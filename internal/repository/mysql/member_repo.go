package mysql

import (
	"context"
	"errors"

	"Supply_Library/internal/model"

	"gorm.io/gorm"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

// Join 重复加入返回 ErrAlreadyMember；插入、计数、事件落表同事务。
// 唯一键 uk_community_member 兜底并发窗口。
func (r *CommunityMemberRepository) Join(member *model.CommunityMember) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.CommunityMember
		err := tx.Where("community_id = ? AND member_id = ?", member.CommunityID, member.MemberID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		if err := adjustMemberCount(tx, member.CommunityID, +1); err != nil {
			return err
		}
		return insertOutbox(tx, "member_joined", member.CommunityID, member.MemberID, nil)
	})
}

func (r *CommunityMemberRepository) Leave(communityID, memberID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("community_id = ? AND member_id = ?", communityID, memberID).
			Delete(&model.CommunityMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 不是成员，幂等返回
			return nil
		}
		if err := adjustMemberCount(tx, communityID, -1); err != nil {
			return err
		}
		return insertOutbox(tx, "member_left", communityID, memberID, nil)
	})
}

func (r *CommunityMemberRepository) IsMember(communityID, memberID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ? AND member_id = ?", communityID, memberID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) IsAdmin(communityID, memberID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ? AND member_id = ? AND role = ?", communityID, memberID, model.RoleAdmin).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) List(communityID uint64) ([]model.CommunityMember, error) {
	var list []model.CommunityMember
	err := r.DB.Where("community_id = ?", communityID).Order("id ASC").Find(&list).Error
	return list, err
}

// CommunityIDs 用户加入的全部社区ID
func (r *CommunityMemberRepository) CommunityIDs(memberID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("member_id = ?", memberID).
		Pluck("community_id", &ids).Error
	return ids, err
}

// IsMemberByEmail 该邮箱对应的 profile 是否已是社区成员
func (r *CommunityMemberRepository) IsMemberByEmail(communityID uint64, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Joins("JOIN profiles ON profiles.user_id = community_members.member_id").
		Where("community_members.community_id = ? AND profiles.email = ?", communityID, email).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityMemberRepository) MemberCount(communityID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ?", communityID).
		Count(&count).Error
	return count, err
}

func adjustMemberCount(tx *gorm.DB, communityID uint64, delta int64) error {
	return tx.Model(&model.Community{}).
		Where("id = ?", communityID).
		UpdateColumn("member_count", gorm.Expr("CASE WHEN member_count + ? < 0 THEN 0 ELSE member_count + ? END", delta, delta)).Error
}

// MemberCountReconcilerRepo 成员数对账仓储
type MemberCountReconcilerRepo struct {
	DB *gorm.DB
}

// CountPair 对账消息结构体
type CountPair struct {
	ID          uint64
	MemberCount int64
}

// ReconcileList 按游标分批拉取社区的缓存计数
func (r *MemberCountReconcilerRepo) ReconcileList(ctx context.Context, batchSize int, lastID uint64) ([]CountPair, uint64, error) {
	var list []CountPair
	if err := r.DB.WithContext(ctx).Model(&model.Community{}).
		Select("id", "member_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealMemberCount 用成员表算真实值
func (r *MemberCountReconcilerRepo) RealMemberCount(ctx context.Context, communityID uint64) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&model.CommunityMember{}).
		Where("community_id = ?", communityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReconcileMemberCount 修正漂移的缓存计数
func (r *MemberCountReconcilerRepo) ReconcileMemberCount(ctx context.Context, communityID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.Community{}).Where("id = ?", communityID).
		UpdateColumn("member_count", real).Error
}
