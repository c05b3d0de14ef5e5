package service

import (
	"errors"

	"Supply_Library/internal/model"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/mysql"
	"Supply_Library/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     *mysql.UserRepository
	rUser    *redis.UserRepository
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		rUser:    &redis.UserRepository{},
		emailSvc: emailSvc,
	}
}

func (s *UserService) Register(username, password, email, code string) error {
	taken, err := s.repo.UsernameTaken(username)
	if err != nil {
		return err
	}
	if taken {
		return errors.New("this username is already taken")
	}

	ok, err := s.emailSvc.VerifyCode(ScopeRegister, email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    email,
	}
	return s.repo.Create(user)
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		// 允许用邮箱登录
		user, err = s.repo.FindByEmail(username)
	}
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}

	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	// 单点登录：新token写入redis即挤掉旧会话
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

// ResetPassword 忘记密码：邮箱验证码换新密码
func (s *UserService) ResetPassword(email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(ScopeReset, email, code)
	if err != nil || !ok {
		return errors.New("verification failed")
	}

	user, err := s.repo.FindByEmail(email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(user, string(hash))
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 登录态修改密码，成功后失效当前会话
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(usrID)
}
