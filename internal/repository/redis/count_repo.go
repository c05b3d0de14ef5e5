package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	MemberCntTTL       = 24 * time.Hour
	MemberCntKeyPrefix = "member:cnt:community" // 缓存社区成员数
)

// MemberCountCache 成员数的读穿缓存，写路径成功后删除，读路径回填
type MemberCountCache struct {
	ttl time.Duration
}

func NewMemberCountCache() *MemberCountCache {
	return &MemberCountCache{ttl: MemberCntTTL}
}

func (r *MemberCountCache) key(communityID uint64) string {
	return fmt.Sprintf("%s:%d", MemberCntKeyPrefix, communityID)
}

// Get 第二个返回值表示是否命中
func (r *MemberCountCache) Get(ctx context.Context, communityID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, r.key(communityID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

func (r *MemberCountCache) Set(ctx context.Context, communityID uint64, cnt int64) error {
	return Client.Set(ctx, r.key(communityID), cnt, r.ttl).Err()
}

// Delete 立刻删除；delay>0 时后台再删一次，抵消并发回填窗口
func (r *MemberCountCache) Delete(ctx context.Context, communityID uint64, delay ...time.Duration) error {
	key := r.key(communityID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}
