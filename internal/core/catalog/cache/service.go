package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/core/catalog"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service 以 Redis 儲存目錄索引
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService 連線 Redis 並創建緩存服務
func NewService(ctx context.Context, cfg config.CacheConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewServiceWithClient(client, cfg.TTL), nil
}

// NewServiceWithClient 使用既有的 Redis 客戶端
func NewServiceWithClient(client *redis.Client, ttl time.Duration) *Service {
	return &Service{
		client: client,
		ttl:    ttl,
	}
}

// Get 讀取索引，未命中或失敗都回傳 false
func (s *Service) Get(ctx context.Context, version string) (catalog.Index, bool) {
	data, err := s.client.Get(ctx, keyPrefix+version).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.LogWarn("Redis 讀取失敗", zap.Error(err))
		}
		return nil, false
	}

	var idx catalog.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		common.LogWarn("Redis 快取內容無法解析", zap.Error(err))
		return nil, false
	}
	return idx, true
}

// Set 寫入索引
func (s *Service) Set(ctx context.Context, version string, idx catalog.Index) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+version, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Close 關閉 Redis 連線
func (s *Service) Close() error {
	return s.client.Close()
}
