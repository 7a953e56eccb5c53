// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix 环境变量前缀，层级之间用双下划线分隔：
// LEARN_PAYMENT__WEBHOOK_SECRET -> payment.webhook_secret
const EnvPrefix = "LEARN_"

var Conf *AppConfig

// Load 依次加载 .env、配置文件和环境变量，后者覆盖前者
func Load(configPath string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("未加载 .env 文件", "error", err)
	}

	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("加载环境变量失败: %w", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(conf)

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// MustLoad 加载配置并设置全局 Conf，失败则 panic
func MustLoad(configPath string) {
	conf, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}
	Conf = conf
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.App.Name == "" {
		c.App.Name = "PegaLearn"
	}
	if c.App.URL == "" {
		c.App.URL = "http://localhost:3000"
	}
	c.App.URL = strings.TrimRight(c.App.URL, "/")
	if c.JWT.ExpireTime == 0 {
		c.JWT.ExpireTime = 24
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "usd"
	}
	if c.Payment.UnitAmount == 0 {
		c.Payment.UnitAmount = 4900
	}
	if c.Payment.ProductName == "" {
		c.Payment.ProductName = "Pega Pro Lifetime Access"
	}
	if c.Storage.MaxUploadSize == 0 {
		c.Storage.MaxUploadSize = 50 << 20
	}
	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 1
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
}

// Validate 校验启动必需的配置项
func (c *AppConfig) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret 不能为空")
	}
	if c.Admin.Email == "" {
		return fmt.Errorf("admin.email 不能为空")
	}
	return nil
}
