package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 未读消息过期时间 - 14天
const unreadExpireAt = 14 * 24 * time.Hour

// 哈希中的标记字段，存在即表示缓存已从数据库重建过
const unreadBuiltField = "_built"

// 只有缓存已经建立时才自增，未建立的交给下一次读取时重建
var incrIfBuilt = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
	redis.call("HINCRBY", KEYS[1], ARGV[2], 1)
	redis.call("EXPIRE", KEYS[1], ARGV[3])
	return 1
end
return 0
`)

// 已建立时扣减，减到 0 删除字段
var decrIfBuilt = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 0 then
	return 0
end
local n = redis.call("HINCRBY", KEYS[1], ARGV[2], "-" .. ARGV[3])
if n <= 0 then
	redis.call("HDEL", KEYS[1], ARGV[2])
end
return 1
`)

// UnreadStorage 未读数缓存，数据库 read_at 为准
// scribe:unread:{uid} => {peer_id: n}
type UnreadStorage struct {
	redis *redis.Client
}

func NewUnreadStorage(rds *redis.Client) *UnreadStorage {
	return &UnreadStorage{rds}
}

// Incr 消息未读数自增
// @params uid     接收者ID
// @params sender  发送者ID
func (u *UnreadStorage) Incr(ctx context.Context, uid, sender int64) error {
	return incrIfBuilt.Run(ctx, u.redis, []string{u.name(uid)},
		unreadBuiltField, strconv.FormatInt(sender, 10), int(unreadExpireAt.Seconds())).Err()
}

// Get 获取全部未读数，缓存未建立时 ok 为 false
func (u *UnreadStorage) Get(ctx context.Context, uid int64) (map[int64]int64, bool, error) {
	vals, err := u.redis.HGetAll(ctx, u.name(uid)).Result()
	if err != nil {
		return nil, false, err
	}
	if _, ok := vals[unreadBuiltField]; !ok {
		return nil, false, nil
	}

	res := make(map[int64]int64, len(vals))
	for field, val := range vals {
		if field == unreadBuiltField {
			continue
		}
		peer, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		res[peer] = n
	}
	return res, true, nil
}

// Set 用数据库统计结果重建缓存
func (u *UnreadStorage) Set(ctx context.Context, uid int64, counts map[int64]int64) error {
	name := u.name(uid)
	fields := make(map[string]any, len(counts)+1)
	fields[unreadBuiltField] = 1
	for peer, n := range counts {
		fields[strconv.FormatInt(peer, 10)] = n
	}

	pipe := u.redis.TxPipeline()
	pipe.Del(ctx, name)
	pipe.HSet(ctx, name, fields)
	pipe.Expire(ctx, name, unreadExpireAt)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset 消息未读数重置
// @params uid     接收者ID
// @params sender  发送者ID
func (u *UnreadStorage) Reset(ctx context.Context, uid, sender int64) error {
	return u.redis.HDel(ctx, u.name(uid), strconv.FormatInt(sender, 10)).Err()
}

// Decr 部分消息已读后扣减未读数
func (u *UnreadStorage) Decr(ctx context.Context, uid, sender, n int64) error {
	if n <= 0 {
		return nil
	}
	return decrIfBuilt.Run(ctx, u.redis, []string{u.name(uid)},
		unreadBuiltField, strconv.FormatInt(sender, 10), n).Err()
}

// Del 删除整个缓存，下次读取时重建
func (u *UnreadStorage) Del(ctx context.Context, uid int64) error {
	return u.redis.Del(ctx, u.name(uid)).Err()
}

func (u *UnreadStorage) name(uid int64) string {
	return fmt.Sprintf("scribe:unread:%d", uid)
}
