package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var instance Config

// Init 加载配置：先读取 config.yaml，再用环境变量覆盖
func Init() {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// 配置文件是可选的，缺失时完全依赖环境变量和默认值
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("读取配置文件失败: %w", err))
		}
	}

	if err := v.Unmarshal(&instance); err != nil {
		panic(fmt.Errorf("解析配置文件失败: %w", err))
	}

	// 环境变量覆盖，例如 MYSQL_HOST、JWT_ACCESS_SECRET、SENTRY_DSN
	if err := envconfig.Process("", &instance); err != nil {
		panic(fmt.Errorf("解析环境变量失败: %w", err))
	}

	applyDefaults(&instance)
}

func applyDefaults(c *Config) {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Prefix == "" {
		c.Prefix = "api"
	}
	if c.Mode == "" {
		c.Mode = ModeDebug
	}
	if c.JWT.AccessExpire <= 0 {
		c.JWT.AccessExpire = 7 * 24 * 3600
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Attachment.Dir == "" {
		c.Attachment.Dir = "./upload/attachment"
	}
	if c.Attachment.BaseURL == "" {
		c.Attachment.BaseURL = "/static/attachment"
	}
}

func Get() *Config {
	return &instance
}
