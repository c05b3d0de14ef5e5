package mysql

import (
	"errors"

	"Supply_Library/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

// Create 建社区、创建者以管理员身份入社，一个事务完成
func (r *CommunityRepository) Create(c *model.Community) (*model.Community, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		c.MemberCount = 1
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		member := &model.CommunityMember{
			CommunityID: c.ID,
			MemberID:    c.CreatorID,
			Role:        model.RoleAdmin,
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "community_created", c.ID, c.CreatorID, map[string]any{"name": c.Name})
	})
	return c, err
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &community, err
}

func (r *CommunityRepository) FindByIDs(ids []uint64) ([]model.Community, error) {
	if len(ids) == 0 {
		return []model.Community{}, nil
	}
	var list []model.Community
	err := r.DB.Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) UpdateAvatar(id uint64, url string) error {
	return r.DB.Model(&model.Community{}).Where("id = ?", id).Update("avatar_url", url).Error
}
