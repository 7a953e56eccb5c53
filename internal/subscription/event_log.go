package subscription

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventLog 记录已处理的回调事件，用于识别重复投递
type EventLog interface {
	// Claim 首次见到事件时返回 true
	Claim(ctx context.Context, eventID string) (bool, error)
	// Release 处理失败时撤销占位，让支付服务重试
	Release(ctx context.Context, eventID string) error
}

const (
	eventKeyPrefix = "webhook:stripe:event:"
	eventTTL       = 72 * time.Hour
)

// RedisEventLog 基于 SETNX 的 EventLog
type RedisEventLog struct {
	client redis.UniversalClient
}

func NewRedisEventLog(client redis.UniversalClient) *RedisEventLog {
	return &RedisEventLog{client: client}
}

func (l *RedisEventLog) Claim(ctx context.Context, eventID string) (bool, error) {
	return l.client.SetNX(ctx, eventKeyPrefix+eventID, time.Now().Unix(), eventTTL).Result()
}

func (l *RedisEventLog) Release(ctx context.Context, eventID string) error {
	return l.client.Del(ctx, eventKeyPrefix+eventID).Err()
}
