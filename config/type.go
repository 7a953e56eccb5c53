package config

import (
	"time"

	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/email"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server    ServerConfig    `koanf:"server"`
	App       AppInfoConfig   `koanf:"app"`
	Admin     AdminConfig     `koanf:"admin"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Log       LogConfig       `koanf:"log"`
	JWT       JWTConfig       `koanf:"jwt"`
	Smtp      email.Config    `koanf:"smtp"`
	Payment   PaymentConfig   `koanf:"payment"`
	Storage   StorageConfig   `koanf:"storage"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	Mode           string        `koanf:"mode"` // debug, release
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	SecureCookie   bool          `koanf:"secure_cookie"`
}

// AppInfoConfig 对外展示信息，URL 用于拼接邮件和支付跳转链接
type AppInfoConfig struct {
	Name string `koanf:"name"`
	URL  string `koanf:"url"`
}

// AdminConfig 唯一管理员身份
type AdminConfig struct {
	Email string `koanf:"email"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
	Output string `koanf:"output"` // stdout, file
	Path   string `koanf:"path"`   // 日志文件路径
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

// PaymentConfig 支付服务配置，金额单位为最小货币单位（美分）
type PaymentConfig struct {
	SecretKey          string `koanf:"secret_key"`
	WebhookSecret      string `koanf:"webhook_secret"`
	Currency           string `koanf:"currency"`
	UnitAmount         int64  `koanf:"unit_amount"`
	ProductName        string `koanf:"product_name"`
	ProductDescription string `koanf:"product_description"`
}

// StorageConfig S3 兼容对象存储配置
type StorageConfig struct {
	Bucket        string `koanf:"bucket"`
	Region        string `koanf:"region"`
	Endpoint      string `koanf:"endpoint"`
	AccessKey     string `koanf:"access_key"`
	SecretKey     string `koanf:"secret_key"`
	PublicBaseURL string `koanf:"public_base_url"`
	MaxUploadSize int64  `koanf:"max_upload_size"` // 字节
}

type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}
