package database

import (
	"log/slog"
	"time"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/config"

	"gorm.io/gorm"
)

const serviceName = "learning-service"

var (
	PostgresDB *gorm.DB
	// RedisDB 未配置 redis.host 时为 nil，依赖它的功能自动降级
	RedisDB *RedisClient
)

func InitDatabase() {
	databaseConf := config.Conf.Database
	redisConf := config.Conf.Redis

	var err error
	PostgresDB, err = InitPostgres(
		&PostgresConfig{
			ServiceName:     serviceName,
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        databaseConf.LogLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)
	if err != nil {
		panic(err)
	}

	if redisConf.Host == "" {
		slog.Warn("未配置 Redis，支付回调去重功能关闭")
		return
	}

	RedisDB, err = InitRedis(
		&RedisConfig{
			ServiceName: serviceName,
			Host:        redisConf.Host,
			Port:        redisConf.Port,
			Password:    redisConf.Password,
			DB:          redisConf.DB,
			PoolSize:    redisConf.PoolSize,
		},
	)
	if err != nil {
		panic(err)
	}
}

// Close 关闭所有连接
func Close() {
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if RedisDB != nil {
		_ = RedisDB.Close()
	}
}
