package database

import (
	"context"
	"fmt"
	"time"

	"kidsphere_backend/internal/config"
	"kidsphere_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitRedis opens a pooled client and verifies the connection. Pool
// sizing comes from config so a small deployment is not forced into
// the production defaults.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 50
	}
	minIdle := cfg.MinIdleConns
	if minIdle <= 0 {
		minIdle = 5
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Log.Info("Redis connection established",
		zap.String("addr", rdb.Options().Addr),
		zap.Int("pool_size", poolSize))
	return rdb, nil
}
