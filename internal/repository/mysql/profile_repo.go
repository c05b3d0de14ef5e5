package mysql

import (
	"errors"

	"Supply_Library/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

// Ensure 幂等创建：已有同 user_id 的行则不动（唯一键兜底，不做先查后插）
func (r *ProfileRepository) Ensure(p *model.Profile) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(p).Error
}

func (r *ProfileRepository) FindByUserID(id uint64) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.Where("user_id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *ProfileRepository) FindByEmail(email string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.Where("email = ?", email).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *ProfileRepository) FindByUserIDs(ids []uint64) ([]model.Profile, error) {
	if len(ids) == 0 {
		return []model.Profile{}, nil
	}
	var list []model.Profile
	err := r.DB.Where("user_id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *ProfileRepository) Update(userID uint64, fields map[string]any) error {
	return r.DB.Model(&model.Profile{}).Where("user_id = ?", userID).Updates(fields).Error
}

func (r *ProfileRepository) UpdateAvatar(userID uint64, url string) error {
	return r.DB.Model(&model.Profile{}).Where("user_id = ?", userID).Update("avatar_url", url).Error
}
