package mysql

import (
	"errors"
	"strings"

	"Supply_Library/internal/model"

	"gorm.io/gorm"
)

type ItemRepository struct {
	DB *gorm.DB
}

func (r *ItemRepository) Create(item *model.Item) error {
	return r.DB.Create(item).Error
}

// CreateWithCommunity 物品和社区关联一个事务写入，替代原先的"失败后删除"补偿
func (r *ItemRepository) CreateWithCommunity(item *model.Item, communityID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		assoc := &model.CommunityItem{
			CommunityID: communityID,
			ItemID:      item.ID,
			Available:   true,
		}
		if err := tx.Create(assoc).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "item_shared", communityID, item.OwnerID, map[string]any{"item_id": item.ID})
	})
}

func (r *ItemRepository) FindByID(id uint64) (*model.Item, error) {
	var item model.Item
	err := r.DB.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &item, err
}

func (r *ItemRepository) FindByIDs(ids []uint64) ([]model.Item, error) {
	if len(ids) == 0 {
		return []model.Item{}, nil
	}
	var list []model.Item
	err := r.DB.Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// FindByIDsMatching 按ID集合取物品，query 非空时做大小写不敏感的子串匹配
func (r *ItemRepository) FindByIDsMatching(ids []uint64, query string) ([]model.Item, error) {
	if len(ids) == 0 {
		return []model.Item{}, nil
	}
	q := r.DB.Where("id IN ?", ids)
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var list []model.Item
	err := q.Find(&list).Error
	return list, err
}

// SearchOwned 主人名下物品的子串搜索，excludeIDs 用于排除已在社区里的物品
func (r *ItemRepository) SearchOwned(ownerID uint64, query string, excludeIDs []uint64) ([]model.Item, error) {
	q := r.DB.Where("owner_id = ?", ownerID).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var list []model.Item
	err := q.Find(&list).Error
	if list == nil {
		list = []model.Item{}
	}
	return list, err
}

// FindOwnedMatching 主人名下全部物品，query 非空时过滤
func (r *ItemRepository) FindOwnedMatching(ownerID uint64, query string) ([]model.Item, error) {
	q := r.DB.Where("owner_id = ?", ownerID)
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	var list []model.Item
	err := q.Find(&list).Error
	return list, err
}

// AddToCommunity 重复关联返回 ErrItemAlreadyShared，唯一键 uk_community_item 兜底
func (r *ItemRepository) AddToCommunity(itemID, communityID, actorID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.CommunityItem
		err := tx.Where("community_id = ? AND item_id = ?", communityID, itemID).
			First(&existing).Error
		if err == nil {
			return ErrItemAlreadyShared
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		assoc := &model.CommunityItem{
			CommunityID: communityID,
			ItemID:      itemID,
			Available:   true,
		}
		if err := tx.Create(assoc).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "item_shared", communityID, actorID, map[string]any{"item_id": itemID})
	})
}

// ItemIDsInCommunity 关联表先行，取社区内全部物品ID
func (r *ItemRepository) ItemIDsInCommunity(communityID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.CommunityItem{}).
		Where("community_id = ?", communityID).
		Pluck("item_id", &ids).Error
	return ids, err
}

func (r *ItemRepository) ItemIDsInCommunities(communityIDs []uint64) ([]uint64, error) {
	if len(communityIDs) == 0 {
		return nil, nil
	}
	var ids []uint64
	err := r.DB.Model(&model.CommunityItem{}).
		Where("community_id IN ?", communityIDs).
		Pluck("item_id", &ids).Error
	return ids, err
}
