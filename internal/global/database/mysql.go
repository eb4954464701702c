package database

import (
	"net"

	"activity-tracker-system/config"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/tools"

	sqlmysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Activity{},
	&model.ActivityUpdate{},
	// 在这里添加其他模型
}

func Init() {
	dsnCfg := sqlmysql.NewConfig()
	dsnCfg.User = config.Get().Mysql.Username
	dsnCfg.Passwd = config.Get().Mysql.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = net.JoinHostPort(config.Get().Mysql.Host, config.Get().Mysql.Port)
	dsnCfg.DBName = config.Get().Mysql.DBName
	dsnCfg.ParseTime = true // 时间统一存取 UTC，报表按 UTC 分桶
	dsnCfg.Params = map[string]string{"charset": "utf8mb4"}

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsnCfg.FormatDSN()), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	// 使用模型列表进行自动迁移
	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}

// Migrate 在指定连接上执行自动迁移，测试环境复用
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(autoMigrateModels...)
}
