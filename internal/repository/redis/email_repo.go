package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"

	// 两阶段键：先写 pending，邮件发出后提升为 confirmed
	PendingSuffix   = "pending"
	ConfirmedSuffix = "confirmed"
)

var (
	ErrEmailNotFound       = errors.New("email code not found")
	ErrEmailCodeDelFailed  = errors.New("email code delete failed")
	ErrCodePendingFailed   = errors.New("code pending failed")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

// EmailRepository 验证码存取，scope ∈ {register, reset}
type EmailRepository struct{}

func pendingKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, PendingSuffix, email)
}

func confirmedKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, ConfirmedSuffix, email)
}

func (e *EmailRepository) SetPending(scope, email, code string) error {
	if err := Client.Set(context.Background(), pendingKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrCodePendingFailed
	}
	return nil
}

// MarkConfirmed 用lua脚本原子执行：取值+写入目标+设置 TTL+删除源
func (e *EmailRepository) MarkConfirmed(scope, email string) error {
	script := `
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`
	px := int64(DefaultEmailCodeTTL / time.Millisecond)
	res := Client.Eval(context.Background(), script,
		[]string{pendingKey(scope, email), confirmedKey(scope, email)}, px)
	if err := res.Err(); err != nil {
		return ErrCodeConfirmedFailed
	}
	ok, _ := res.Int()
	if ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeletePending 删除 pending 键（幂等）
func (e *EmailRepository) DeletePending(scope, email string) error {
	if err := Client.Del(context.Background(), pendingKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}

// GetConfirmed 校验时读取 confirmed 的验证码
func (e *EmailRepository) GetConfirmed(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), confirmedKey(scope, email)).Result()
	if err != nil {
		return "", ErrEmailNotFound
	}
	return val, nil
}

// DeleteConfirmed 校验通过后一次性删除
func (e *EmailRepository) DeleteConfirmed(scope, email string) error {
	if err := Client.Del(context.Background(), confirmedKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
