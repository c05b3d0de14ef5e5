package service

import (
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/redis"
)

const (
	ScopeRegister = "register"
	ScopeReset    = "reset"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailRepository{}}
}

// SendRegisterCode 发送注册验证码
func (s *EmailService) SendRegisterCode(email string) error {
	return s.sendCode(ScopeRegister, "Registration", email)
}

// SendResetCode 发送重置密码验证码
func (s *EmailService) SendResetCode(email string) error {
	return s.sendCode(ScopeReset, "Password Reset", email)
}

// sendCode 先写 pending 键，邮件发出后再提升为 confirmed，
// 提升失败时清除 pending，保证库里不会留下没发出去的码
func (s *EmailService) sendCode(scope, subject, email string) error {
	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPending(scope, email, code); err != nil {
		return err
	}

	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, subject+" Code", html); err != nil {
		return err
	}

	if err = s.rds.MarkConfirmed(scope, email); err != nil {
		_ = s.rds.DeletePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmed(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteConfirmed(scope, email); err != nil {
		return false, err
	}
	return true, nil
}

// SendInvitation 邀请通知邮件，无验证码
func (s *EmailService) SendInvitation(to, communityName, inviterName string) error {
	html := pkg.InvitationHTML(communityName, inviterName)
	return pkg.SendEmail(s.emailCfg, to, "You are invited to "+communityName, html)
}
