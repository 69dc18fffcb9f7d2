package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itsatony/smartrooms/internal/config"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const statsKey = "smartrooms:sensor_statistics"

// StatsCache caches the sensor statistics aggregate. Cache failures are
// never fatal: a miss simply falls through to the database.
type StatsCache interface {
	GetStatistics(ctx context.Context) (*models.SensorStatistics, bool)
	SetStatistics(ctx context.Context, stats *models.SensorStatistics)
	Invalidate(ctx context.Context)
	Close() error
}

// New returns a Redis backed cache when enabled, otherwise a no-op cache
func New(cfg config.RedisConfig) StatsCache {
	if !cfg.Enabled {
		return Noop{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	nuts.L.Infof("[Cache] Using redis at %s:%d for statistics (ttl %v)", cfg.Host, cfg.Port, cfg.StatsTTL)
	return NewRedisCache(client, cfg.StatsTTL)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetStatistics(ctx context.Context) (*models.SensorStatistics, bool) {
	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			nuts.L.Warnf("[Cache] Failed to read statistics: %v", err)
		}
		return nil, false
	}
	stats := &models.SensorStatistics{}
	if err := json.Unmarshal(raw, stats); err != nil {
		nuts.L.Warnf("[Cache] Discarding corrupt statistics entry: %v", err)
		return nil, false
	}
	return stats, true
}

func (c *RedisCache) SetStatistics(ctx context.Context, stats *models.SensorStatistics) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[Cache] Failed to store statistics: %v", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey).Err(); err != nil {
		nuts.L.Warnf("[Cache] Failed to invalidate statistics: %v", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything
type Noop struct{}

func (Noop) GetStatistics(context.Context) (*models.SensorStatistics, bool) { return nil, false }
func (Noop) SetStatistics(context.Context, *models.SensorStatistics)         {}
func (Noop) Invalidate(context.Context)                                      {}
func (Noop) Close() error                                                    { return nil }
