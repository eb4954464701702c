package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host       string `envconfig:"HOST"`
	Port       string `envconfig:"PORT"`
	Prefix     string `envconfig:"PREFIX"`
	Mode       Mode   `envconfig:"MODE"`
	Mysql      Mysql
	Redis      Redis
	JWT        JWT
	Log        Log        `mapstructure:"log"`
	Sentry     Sentry     `mapstructure:"sentry"`
	Attachment Attachment `mapstructure:"attachment"`
	S3         S3
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `mapstructure:"host" envconfig:"HOST"`
	Port     string `mapstructure:"port" envconfig:"PORT"`
	Password string `mapstructure:"password" envconfig:"PASSWORD"`
	DB       int    `mapstructure:"db" envconfig:"DB"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"` // 秒
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string  `mapstructure:"dsn" envconfig:"DSN"`
	Environment string  `mapstructure:"environment" envconfig:"ENVIRONMENT"`
	SampleRate  float64 `mapstructure:"sample_rate" envconfig:"SAMPLE_RATE"`
}

// Attachment 进度附件的本地存储配置
type Attachment struct {
	Dir     string `mapstructure:"dir" envconfig:"DIR"`
	BaseURL string `mapstructure:"base_url" envconfig:"BASE_URL"`
}

type S3 struct {
	Endpoint        string `mapstructure:"endpoint"`
	BaseURL         string `mapstructure:"base_url"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKey       string `mapstructure:"access_key"`
	SecretAccessKey string `mapstructure:"secret_key"`
	Prefix          string `mapstructure:"prefix"`
	UsePathStyle    bool   `mapstructure:"path_style"`
}
