package test

import (
	"fmt"
	"strings"
	"testing"

	"activity-tracker-system/config"
	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/module"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Setup 为单个测试准备环境：独立的内存数据库、测试模式和必要的默认配置。
// 每个测试用自己名字命名的数据库，互不干扰
func Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Get()
	cfg.Mode = config.ModeDebug
	if cfg.JWT.AccessSecret == "" {
		cfg.JWT.AccessSecret = "test-secret"
	}
	if cfg.JWT.AccessExpire <= 0 {
		cfg.JWT.AccessExpire = 3600
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	for _, m := range module.Modules {
		m.Init()
	}
}
