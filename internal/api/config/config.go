package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件与环境变量加载配置并填充到 Cfg
func LoadConfig() error {
	// .env 可选，仅用于本地开发
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.SetEnvPrefix("DAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		log.Warn("config file not found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
}

// defaultValues 环境变量只对已注册的 key 生效，新增配置项时需同步补充
func defaultValues() map[string]any {
	return map[string]any{
		"server.port":              8080,
		"server.base_url":          "",
		"server.mode":              "release",
		"server.cors_origins":      []string{},
		"database.dsn":             "",
		"database.max_idle":        5,
		"database.max_open":        20,
		"database.max_lifetime":    30,
		"database.auto_migrate":    false,
		"redis.addr":               "127.0.0.1:6379",
		"redis.password":           "",
		"redis.db":                 0,
		"redis.pool_size":          10,
		"minio.internal_endpoint":  "",
		"minio.external_endpoint":  "",
		"minio.access_key":         "",
		"minio.secret_key":         "",
		"minio.bucket":             "dam-media",
		"minio.presign_expiry":     15,
		"jwt.secret":               "",
		"jwt.expire_hours":         24 * 7,
		"jwt.issuer":               "TaylorDAM",
		"mail.api_url":             "https://api.resend.com",
		"mail.api_key":             "",
		"mail.app_name":            "Taylor Products DAM",
		"mail.from":                "Taylor Products DAM <noreply@taylorproducts.com>",
		"upload.max_size":          200 * 1024 * 1024,
		"upload.pending_ttl_hours": 24,
		"storage.cost_per_gb":      0.15,
		"storage.warn_total_gb":    10,
		"storage.warn_avg_mb":      100,
		"logstash.address":         "",
		"logstash.index":           "logstash-dam",
		"logstash.token":           "",
	}
}

// Validate 检查启动所必需的配置项
func (c *Config) Validate() error {
	if c.DB.DSN == "" {
		return errors.New("config: database.dsn is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("config: jwt.secret is required")
	}
	if c.Upload.MaxSize <= 0 {
		return errors.New("config: upload.max_size must be positive")
	}
	return nil
}
