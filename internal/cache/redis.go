// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/workspace-service/internal/logging"
	"github.com/canonical/workspace-service/internal/monitoring"
	"github.com/canonical/workspace-service/internal/tracing"
)

var _ CacheInterface = (*RedisCache)(nil)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// DashboardKey is the key the workspace dashboard view is cached under.
func DashboardKey(workspaceID string) string {
	return fmt.Sprintf("workspace:%s:dashboard", workspaceID)
}

type RedisCache struct {
	client *redis.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	ctx, span := c.tracer.Start(ctx, "cache.RedisCache.Get")
	defer span.End()

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		c.setAvailability(0)
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	ctx, span := c.tracer.Start(ctx, "cache.RedisCache.Set")
	defer span.End()

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.setAvailability(0)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	ctx, span := c.tracer.Start(ctx, "cache.RedisCache.Delete")
	defer span.End()

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.setAvailability(0)
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) setAvailability(v float64) {
	if err := c.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, v); err != nil {
		c.logger.Debugf("failed to set dependency metric: %v", err)
	}
}

// NewRedisCache connects to redis and checks the connection before returning.
func NewRedisCache(cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	c := new(RedisCache)
	c.client = client
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	c.setAvailability(1)

	return c, nil
}
