package database

import (
	"context"
	"net"
	"time"

	"activity-tracker-system/config"
	"activity-tracker-system/tools"

	"github.com/redis/go-redis/v9"
)

// RDB 为 nil 时表示未配置 Redis，相关功能（令牌吊销）自动退化为不可用
var RDB *redis.Client

const tokenDenyPrefix = "token:deny:"

func InitRedis() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tools.PanicOnErr(RDB.Ping(ctx).Err())
}

// DenyToken 将令牌加入吊销名单，ttl 为令牌剩余有效期
func DenyToken(ctx context.Context, token string, ttl time.Duration) error {
	if RDB == nil || ttl <= 0 {
		return nil
	}
	return RDB.Set(ctx, tokenDenyPrefix+token, 1, ttl).Err()
}

// TokenDenied 检查令牌是否已被吊销
func TokenDenied(ctx context.Context, token string) bool {
	if RDB == nil {
		return false
	}
	n, err := RDB.Exists(ctx, tokenDenyPrefix+token).Result()
	return err == nil && n > 0
}
