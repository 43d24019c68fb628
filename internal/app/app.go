package app

import (
	"fmt"

	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the stores, optionally migrates the schema and mounts
// every module on router. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app")

	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if cfg.AutoMigrate {
		if err := migrate(gormDB); err != nil {
			sqlDB.Close()
			return nil, err
		}
		logger.Info("database schema migrated")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		client, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		rdb = client
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, profile cache and idempotency are disabled")
	}

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("register modules: %w", err)
	}

	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		sqlDB.Close()
	}
	return cleanup, nil
}
