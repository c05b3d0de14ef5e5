package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"Supply_Library/internal/imaging"
	"Supply_Library/internal/model"
	"Supply_Library/internal/repository/mysql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	repo          *mysql.ProfileRepository
	userRepo      *mysql.UserRepository
	communityRepo *mysql.CommunityRepository
	memberRepo    *mysql.CommunityMemberRepository
	avatarDir     string
}

func NewProfileService(db *gorm.DB, avatarDir string) *ProfileService {
	return &ProfileService{
		repo:          &mysql.ProfileRepository{DB: db},
		userRepo:      &mysql.UserRepository{DB: db},
		communityRepo: &mysql.CommunityRepository{DB: db},
		memberRepo:    &mysql.CommunityMemberRepository{DB: db},
		avatarDir:     avatarDir,
	}
}

// Get 不存在时惰性创建（幂等 upsert）后重查
func (s *ProfileService) Get(userID uint64) (*model.Profile, error) {
	profile, err := s.repo.FindByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if err = s.repo.Ensure(&model.Profile{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}); err != nil {
		return nil, err
	}
	return s.repo.FindByUserID(userID)
}

func (s *ProfileService) Update(userID uint64, fullName string) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	return s.repo.Update(userID, map[string]any{"full_name": fullName})
}

// SaveAvatar 处理上传图片并落盘，返回可访问的 URL 路径
func (s *ProfileService) SaveAvatar(userID uint64, r io.Reader) (string, error) {
	if _, err := s.Get(userID); err != nil {
		return "", err
	}
	url, err := s.storeAvatar(r)
	if err != nil {
		return "", err
	}
	if err = s.repo.UpdateAvatar(userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// SaveCommunityAvatar 仅社区管理员可换社区头像
func (s *ProfileService) SaveCommunityAvatar(communityID, userID uint64, r io.Reader) (string, error) {
	admin, err := s.memberRepo.IsAdmin(communityID, userID)
	if err != nil {
		return "", err
	}
	if !admin {
		return "", ErrNotAdmin
	}
	url, err := s.storeAvatar(r)
	if err != nil {
		return "", err
	}
	if err = s.communityRepo.UpdateAvatar(communityID, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *ProfileService) storeAvatar(r io.Reader) (string, error) {
	data, err := imaging.ProcessAvatar(r)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(s.avatarDir, 0o755); err != nil {
		return "", fmt.Errorf("creating avatar dir: %w", err)
	}
	name := uuid.NewString() + ".jpg"
	if err = os.WriteFile(filepath.Join(s.avatarDir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("writing avatar: %w", err)
	}
	return "/avatars/" + name, nil
}
