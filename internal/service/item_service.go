package service

import (
	"errors"

	"Supply_Library/internal/model"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/mysql"

	"gorm.io/gorm"
)

type ItemService struct {
	repo        *mysql.ItemRepository
	memberRepo  *mysql.CommunityMemberRepository
	profileRepo *mysql.ProfileRepository
}

// OwnerProfile 物品主人的展示字段
type OwnerProfile struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ItemView 物品加上主人信息
type ItemView struct {
	model.Item
	OwnerProfile *OwnerProfile `json:"owner_profile,omitempty"`
}

// CreateItemInput 新物品的外部输入
type CreateItemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Condition   string `json:"condition"`
	ImageURL    string `json:"image_url"`
	Consumable  bool   `json:"consumable"`
	Quantity    int    `json:"quantity"`
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{
		repo:        &mysql.ItemRepository{DB: db},
		memberRepo:  &mysql.CommunityMemberRepository{DB: db},
		profileRepo: &mysql.ProfileRepository{DB: db},
	}
}

// CommunityItems 关联表先行再取物品，无关联时返回空列表
func (s *ItemService) CommunityItems(communityID uint64) ([]ItemView, error) {
	ids, err := s.repo.ItemIDsInCommunity(communityID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	return s.attachOwners(items)
}

// SearchUserItems 主人名下物品的大小写不敏感子串搜索；
// communityID 非 0 时排除已在该社区的物品
func (s *ItemService) SearchUserItems(userID uint64, query string, communityID uint64) ([]ItemView, error) {
	var excludeIDs []uint64
	if communityID != 0 {
		var err error
		excludeIDs, err = s.repo.ItemIDsInCommunity(communityID)
		if err != nil {
			return nil, err
		}
	}
	items, err := s.repo.SearchOwned(userID, query, excludeIDs)
	if err != nil {
		return nil, err
	}
	return s.attachOwners(items)
}

func (s *ItemService) AddItemToCommunity(itemID, communityID, actorID uint64) error {
	if err := s.repo.AddToCommunity(itemID, communityID, actorID); err != nil {
		return err
	}
	return nil
}

// CreateItem 建物品并关联社区，单事务
func (s *ItemService) CreateItem(input CreateItemInput, communityID, userID uint64) (*ItemView, error) {
	item, err := s.newItem(input, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.CreateWithCommunity(item, communityID); err != nil {
		return nil, err
	}
	pkg.IncItemCreated()
	return s.attachOwner(item)
}

// CreatePersonalItem 不关联任何社区的个人物品
func (s *ItemService) CreatePersonalItem(input CreateItemInput, userID uint64) (*ItemView, error) {
	item, err := s.newItem(input, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(item); err != nil {
		return nil, err
	}
	pkg.IncItemCreated()
	return s.attachOwner(item)
}

func (s *ItemService) newItem(input CreateItemInput, userID uint64) (*model.Item, error) {
	if input.Name == "" {
		return nil, errors.New("item name required")
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}
	return &model.Item{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Condition:   input.Condition,
		ImageURL:    input.ImageURL,
		Consumable:  input.Consumable,
		Quantity:    input.Quantity,
		OwnerID:     userID,
	}, nil
}

// AccessibleItems 用户可见物品：自己的 + 所在社区共享的
func (s *ItemService) AccessibleItems(userID uint64, limit int) ([]ItemView, error) {
	return s.SearchCommunityItems(userID, "", limit)
}

// SearchCommunityItems 两路独立扇出后在客户端侧按物品ID去重：
// (a) 成员关系 → 社区 → 关联 → 物品，(b) owner_id → 物品。
func (s *ItemService) SearchCommunityItems(userID uint64, query string, limit int) ([]ItemView, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	communityIDs, err := s.memberRepo.CommunityIDs(userID)
	if err != nil {
		return nil, err
	}
	sharedIDs, err := s.repo.ItemIDsInCommunities(communityIDs)
	if err != nil {
		return nil, err
	}
	shared, err := s.repo.FindByIDsMatching(sharedIDs, query)
	if err != nil {
		return nil, err
	}
	owned, err := s.repo.FindOwnedMatching(userID, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]bool, len(shared)+len(owned))
	merged := make([]model.Item, 0, len(shared)+len(owned))
	for _, item := range append(shared, owned...) {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		merged = append(merged, item)
	}
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return s.attachOwners(merged)
}

func (s *ItemService) attachOwner(item *model.Item) (*ItemView, error) {
	views, err := s.attachOwners([]model.Item{*item})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ItemService) attachOwners(items []model.Item) ([]ItemView, error) {
	ownerIDs := make([]uint64, 0, len(items))
	for _, item := range items {
		ownerIDs = append(ownerIDs, item.OwnerID)
	}
	profiles, err := s.profileRepo.FindByUserIDs(ownerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].UserID] = &profiles[i]
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		v := ItemView{Item: item}
		if p := byID[item.OwnerID]; p != nil {
			v.OwnerProfile = &OwnerProfile{Username: p.Username, AvatarURL: p.AvatarURL}
		}
		views = append(views, v)
	}
	return views, nil
}
