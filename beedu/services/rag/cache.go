package rag

import (
	"beedu/beedu/utils/logging"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const answerCacheTTL = time.Hour

// AnswerCache is an optional Redis cache-aside layer for generated answers.
// A nil *AnswerCache is valid and behaves as a permanent miss, so callers
// never have to branch on whether caching is configured.
type AnswerCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewAnswerCache connects to Redis at redisURL and verifies the connection.
func NewAnswerCache(ctx context.Context, redisURL string) (*AnswerCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &AnswerCache{rdb: rdb, ttl: answerCacheTTL}, nil
}

func cacheKey(question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	return "beedu:answer:" + hex.EncodeToString(sum[:])
}

func (c *AnswerCache) Get(ctx context.Context, question string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, cacheKey(question)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		logging.ErrorLogger.Error("answer cache get failed", zap.Error(err))
		return "", false
	}
	return val, true
}

// Set stores a successful answer. Cache errors are logged, never surfaced.
func (c *AnswerCache) Set(ctx context.Context, question, answer string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(question), answer, c.ttl).Err(); err != nil {
		logging.ErrorLogger.Error("answer cache set failed", zap.Error(err))
	}
}

func (c *AnswerCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
