package cache

import (
	"context"
	"testing"
	"time"

	"github.com/itsatony/smartrooms/internal/config"
	"github.com/itsatony/smartrooms/internal/models"
	"github.com/redis/go-redis/v9"
)

func TestNewDisabledReturnsNoop(t *testing.T) {
	c := New(config.RedisConfig{Enabled: false})
	if _, ok := c.(Noop); !ok {
		t.Fatalf("expected Noop cache, got %T", c)
	}
	ctx := context.Background()
	c.SetStatistics(ctx, &models.SensorStatistics{Total: 1, Active: 1})
	if _, hit := c.GetStatistics(ctx); hit {
		t.Error("noop cache should never hit")
	}
	if err := c.Close(); err != nil {
		t.Error(err)
	}
}

func TestRedisCacheUnreachableIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCache(client, time.Second)
	defer c.Close()

	ctx := context.Background()
	c.SetStatistics(ctx, &models.SensorStatistics{Total: 2})
	c.Invalidate(ctx)
	if _, hit := c.GetStatistics(ctx); hit {
		t.Error("unreachable redis must behave as a cache miss")
	}
}
