// Package bootstrap 组装 server 与 reportctl 共用的数据源和缓存依赖
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"shiftdesk/config"
	"shiftdesk/internal/repository"
	"shiftdesk/internal/service"
	"shiftdesk/internal/upstream"
	"shiftdesk/pkg/database"
	"shiftdesk/pkg/redis"
)

// OpenSource 按 source.kind 创建数据源；返回的 cleanup 负责释放连接
func OpenSource(cfg *config.Config, logger *zap.Logger) (service.Source, func(), error) {
	switch cfg.Source.Kind {
	case config.SourceDB:
		db, err := database.NewDB(&cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		cleanup := func() { sqlDB.Close() }
		return service.NewDBSource(repository.NewRepository(db)), cleanup, nil

	case config.SourceAPI:
		logger.Info("使用上游 API 数据源", zap.String("base_url", cfg.Upstream.BaseURL))
		return upstream.NewClient(&cfg.Upstream, nil, logger), func() {}, nil
	}
	return nil, nil, fmt.Errorf("未知的数据源类型: %q", cfg.Source.Kind)
}

// OpenRedis 连接 Redis；失败时返回 nil 并记录告警，调用方降级运行
func OpenRedis(cfg *config.RedisConfig, logger *zap.Logger) *redis.Client {
	rdb, err := redis.NewClient(cfg, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，快照缓存、Token 黑名单与导出限流将不可用", zap.Error(err))
		return nil
	}
	return rdb
}

// SnapshotCache 将可能为 nil 的 Redis 客户端转换为缓存接口，避免带类型的 nil
func SnapshotCache(rdb *redis.Client) service.SnapshotCache {
	if rdb == nil {
		return nil
	}
	return rdb
}
