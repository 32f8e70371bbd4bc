package config

// Config 配置主体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Mail     MailConfig     `mapstructure:"mail"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logstash LogstashConfig `mapstructure:"logstash"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
	Mode    string `mapstructure:"mode"`
	// CORSOrigins 允许跨域的前端地址，为空时不限制
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	Bucket           string `mapstructure:"bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExternalUseSSL   bool   `mapstructure:"external_use_ssl"`
	// PresignExpiry 预签名上传链接有效期（分钟）
	PresignExpiry int `mapstructure:"presign_expiry"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
	Issuer      string `mapstructure:"issuer"`
}

// MailConfig 邮件投递 API 配置，ApiKey 为空时只打印邀请链接
type MailConfig struct {
	ApiURL  string `mapstructure:"api_url"`
	ApiKey  string `mapstructure:"api_key"`
	From    string `mapstructure:"from"`
	AppName string `mapstructure:"app_name"`
}

type UploadConfig struct {
	MaxSize         int64 `mapstructure:"max_size"`
	PendingTTLHours int   `mapstructure:"pending_ttl_hours"`
}

// StorageConfig 存储统计与费用估算
type StorageConfig struct {
	CostPerGB   float64 `mapstructure:"cost_per_gb"`
	WarnTotalGB float64 `mapstructure:"warn_total_gb"`
	WarnAvgMB   float64 `mapstructure:"warn_avg_mb"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}
