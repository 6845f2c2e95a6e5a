package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"mindcheck_backend/internal/model"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	progressKeyPrefix = "progress:stats:"
	versionKeyPrefix  = "progress:ver:"
	quizKeyPrefix     = "quiz:published:"
)

// versionGrace 版本号比它名下的统计多保留的时间，保证版本号不会在统计过期前被重置
const versionGrace = time.Hour

// ProgressCache 在 redis 中缓存进度统计和已发布的测验。Redis 为 nil 时所有读取都视为未命中。
//
// 统计按 (用户, 测验) 维护一个版本号，缓存键带版本。提交新结果时递增版本号，
// 在递增前读取版本并计算出的统计只会写入旧版本的键，不会被后续读取命中。
type ProgressCache struct {
	Redis       *redis.Client
	progressTTL atomic.Int64
	quizTTL     atomic.Int64
}

func NewProgressCache(rdb *redis.Client, progressTTL, quizTTL time.Duration) *ProgressCache {
	c := &ProgressCache{Redis: rdb}
	c.SetTTLs(progressTTL, quizTTL)
	return c
}

// SetTTLs 配置重载时调用
func (c *ProgressCache) SetTTLs(progressTTL, quizTTL time.Duration) {
	c.progressTTL.Store(int64(progressTTL))
	c.quizTTL.Store(int64(quizTTL))
}

func progressKey(userID uint, quizID string, version int64) string {
	return fmt.Sprintf("%s%d:%s:v%d", progressKeyPrefix, userID, quizID, version)
}

func versionKey(userID uint, quizID string) string {
	return fmt.Sprintf("%s%d:%s", versionKeyPrefix, userID, quizID)
}

// GetStats 返回缓存的统计和当前版本号。版本号读取失败时返回 -1，调用方不应再回写。
func (c *ProgressCache) GetStats(ctx context.Context, userID uint, quizID string) (*model.ProgressStats, int64, bool) {
	if c == nil || c.Redis == nil {
		return nil, -1, false
	}
	version, err := c.Redis.Get(ctx, versionKey(userID, quizID)).Int64()
	switch {
	case err == redis.Nil:
		version = 0
	case err != nil:
		return nil, -1, false
	}

	var stats model.ProgressStats
	if !c.get(ctx, progressKey(userID, quizID, version), &stats) {
		return nil, version, false
	}
	return &stats, version, true
}

// SetStats 写入 version 对应的键，version 为负数时跳过
func (c *ProgressCache) SetStats(ctx context.Context, userID uint, quizID string, version int64, stats *model.ProgressStats) error {
	if c == nil || c.Redis == nil || version < 0 {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	ttl := time.Duration(c.progressTTL.Load())
	_, err = c.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, progressKey(userID, quizID, version), data, ttl)
		pipe.Expire(ctx, versionKey(userID, quizID), ttl+versionGrace)
		return nil
	})
	return err
}

// InvalidateStats 递增版本号，旧版本的统计随 TTL 自然过期
func (c *ProgressCache) InvalidateStats(ctx context.Context, userID uint, quizID string) error {
	if c == nil || c.Redis == nil {
		return nil
	}
	key := versionKey(userID, quizID)
	ttl := time.Duration(c.progressTTL.Load())
	_, err := c.Redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl+versionGrace)
		return nil
	})
	return err
}

func (c *ProgressCache) GetQuiz(ctx context.Context, quizID string) (*model.Quiz, bool) {
	if c == nil || c.Redis == nil {
		return nil, false
	}
	var quiz model.Quiz
	if !c.get(ctx, quizKeyPrefix+quizID, &quiz) {
		return nil, false
	}
	return &quiz, true
}

func (c *ProgressCache) SetQuiz(ctx context.Context, quiz *model.Quiz) error {
	if c == nil || c.Redis == nil {
		return nil
	}
	return c.set(ctx, quizKeyPrefix+quiz.ID, quiz, time.Duration(c.quizTTL.Load()))
}

func (c *ProgressCache) InvalidateQuiz(ctx context.Context, quizID string) error {
	if c == nil || c.Redis == nil {
		return nil
	}
	return c.Redis.Del(ctx, quizKeyPrefix+quizID).Err()
}

func (c *ProgressCache) get(ctx context.Context, key string, dst interface{}) bool {
	val, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil 为正常未命中，其他错误同样按未命中处理
		return false
	}
	return json.Unmarshal(val, dst) == nil
}

func (c *ProgressCache) set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, key, data, ttl).Err()
}
