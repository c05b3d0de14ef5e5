package service

import (
	"context"
	"errors"
	"fmt"

	"Supply_Library/internal/model"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/mysql"
	"Supply_Library/internal/repository/redis"

	"gorm.io/gorm"
)

type CommunityService struct {
	repo        *mysql.CommunityRepository
	memberRepo  *mysql.CommunityMemberRepository
	profileRepo *mysql.ProfileRepository
	userRepo    *mysql.UserRepository
	countCache  *redis.MemberCountCache // nil 时跳过缓存
}

// Member 成员行和它的 profile
type Member struct {
	MemberID uint64         `json:"member_id"`
	Role     string         `json:"role"`
	Profile  *model.Profile `json:"profile,omitempty"`
}

func NewCommunityService(db *gorm.DB, countCache *redis.MemberCountCache) *CommunityService {
	return &CommunityService{
		repo:        &mysql.CommunityRepository{DB: db},
		memberRepo:  &mysql.CommunityMemberRepository{DB: db},
		profileRepo: &mysql.ProfileRepository{DB: db},
		userRepo:    &mysql.UserRepository{DB: db},
		countCache:  countCache,
	}
}

// Create 先保证 profile 存在，再建社区（创建者同事务入社为管理员）
func (s *CommunityService) Create(userID uint64, name, desc string) (*model.Community, error) {
	if name == "" {
		return nil, errors.New("community name required")
	}

	if err := s.ensureProfile(userID); err != nil {
		return nil, fmt.Errorf("profile error: %w", err)
	}

	community := &model.Community{
		Name:        name,
		Description: desc,
		CreatorID:   userID,
	}
	if _, err := s.repo.Create(community); err != nil {
		return nil, err
	}
	pkg.IncCommunityCreated()
	pkg.IncMemberJoined()
	return community, nil
}

func (s *CommunityService) ensureProfile(userID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	return s.profileRepo.Ensure(&model.Profile{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

// UserCommunities 无任何成员关系时返回空列表而不是错误
func (s *CommunityService) UserCommunities(userID uint64) ([]model.Community, error) {
	ids, err := s.memberRepo.CommunityIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByIDs(ids)
}

func (s *CommunityService) Join(ctx context.Context, communityID, userID uint64) error {
	if err := s.ensureProfile(userID); err != nil {
		return fmt.Errorf("profile error: %w", err)
	}
	if err := s.memberRepo.Join(&model.CommunityMember{
		CommunityID: communityID,
		MemberID:    userID,
		Role:        model.RoleMember,
	}); err != nil {
		return err
	}
	pkg.IncMemberJoined()
	s.invalidateCount(ctx, communityID)
	return nil
}

func (s *CommunityService) Leave(ctx context.Context, communityID, userID uint64) error {
	if err := s.memberRepo.Leave(communityID, userID); err != nil {
		return err
	}
	s.invalidateCount(ctx, communityID)
	return nil
}

func (s *CommunityService) IsAdmin(userID, communityID uint64) (bool, error) {
	return s.memberRepo.IsAdmin(communityID, userID)
}

func (s *CommunityService) Detail(ctx context.Context, communityID uint64) (*model.Community, error) {
	community, err := s.repo.FindByID(communityID)
	if err != nil {
		return nil, err
	}
	if cnt, err := s.MemberCount(ctx, communityID); err == nil {
		community.MemberCount = cnt
	}
	return community, nil
}

// MemberCount 读穿缓存：命中直接返回，不命中查库回填
func (s *CommunityService) MemberCount(ctx context.Context, communityID uint64) (int64, error) {
	if s.countCache != nil {
		if cnt, hit, err := s.countCache.Get(ctx, communityID); err == nil && hit {
			return cnt, nil
		}
	}
	cnt, err := s.memberRepo.MemberCount(communityID)
	if err != nil {
		return 0, err
	}
	if s.countCache != nil {
		_ = s.countCache.Set(ctx, communityID, cnt)
	}
	return cnt, nil
}

func (s *CommunityService) invalidateCount(ctx context.Context, communityID uint64) {
	if s.countCache != nil {
		_ = s.countCache.Delete(ctx, communityID)
	}
}

// Members 成员关系先行，再按ID集合取 profile
func (s *CommunityService) Members(communityID uint64) ([]Member, error) {
	rows, err := s.memberRepo.List(communityID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.MemberID)
	}
	profiles, err := s.profileRepo.FindByUserIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint64]*model.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].UserID] = &profiles[i]
	}

	members := make([]Member, 0, len(rows))
	for _, m := range rows {
		members = append(members, Member{
			MemberID: m.MemberID,
			Role:     m.RoleName(),
			Profile:  byID[m.MemberID],
		})
	}
	return members, nil
}
