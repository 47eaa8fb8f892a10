package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const reactionLockTTL = 5 * time.Second

// 只删除自己持有的锁，过期后被他人抢到的锁保持不动
var unlockIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStorage 基于 SetNX 的短时互斥锁，防止重复点击
type LockStorage struct {
	redis *redis.Client
}

func NewLockStorage(rds *redis.Client) *LockStorage {
	return &LockStorage{rds}
}

// TryLock 抢锁成功返回持有者 token，调用方凭 token 调用 Unlock
func (l *LockStorage) TryLock(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.redis.SetNX(ctx, l.name(key), token, reactionLockTTL).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// Unlock token 不匹配时不做任何事
func (l *LockStorage) Unlock(ctx context.Context, key, token string) error {
	return unlockIfOwner.Run(ctx, l.redis, []string{l.name(key)}, token).Err()
}

// ReactionKey 用户对文档的点赞/收藏锁
func ReactionKey(kind string, uid, docID int64) string {
	return fmt.Sprintf("%s:%d:%d", kind, uid, docID)
}

func (l *LockStorage) name(key string) string {
	return "scribe:lock:" + key
}
