package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	UserTokenPrefix = "login:user:token"
	UserTokenExpire = 30 * time.Minute
)

// UserRepository 单活跃会话：每个用户只保留最后一次登录的 access token
type UserRepository struct{}

func (r *UserRepository) AddUserToken(usrID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, usrID)
	if err := Client.Set(context.Background(), key, token, UserTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *UserRepository) GetUserToken(usrID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, usrID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *UserRepository) ExtendUserToken(usrID uint64) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, usrID)
	if _, err := Client.Expire(context.Background(), key, UserTokenExpire).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *UserRepository) DeleteUserToken(usrID uint64) error {
	key := fmt.Sprintf("%s:%d", UserTokenPrefix, usrID)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
