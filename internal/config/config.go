// Package config loads service settings from an optional config file and the
// environment using viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "PRESUPUESTOS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Import    ImportConfig    `mapstructure:"import"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	// URL empty means in-memory repositories.
	URL          string        `mapstructure:"url"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

type RedisConfig struct {
	// Addr empty disables the quote cache and keeps refresh tokens and bans in memory.
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	QuoteTTL time.Duration `mapstructure:"quote_ttl"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

type LogConfig struct {
	Mode       string `mapstructure:"mode"` // development or production
	Level      string `mapstructure:"level"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxStrikes        int           `mapstructure:"max_strikes"`
	BanDuration       time.Duration `mapstructure:"ban_duration"`
}

type ImportConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.url", "")
	v.SetDefault("database.query_timeout", 3*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.quote_ttl", 24*time.Hour)

	v.SetDefault("auth.jwt_secret", "your-secret-key-change-in-production")
	v.SetDefault("auth.access_token_ttl", 7*24*time.Hour)
	v.SetDefault("auth.refresh_token_ttl", 30*24*time.Hour)

	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file_enable", false)
	v.SetDefault("log.filename", "logs/presupuestos.log")

	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.max_strikes", 50)
	v.SetDefault("rate_limit.ban_duration", 15*time.Minute)

	v.SetDefault("import.max_upload_bytes", int64(10<<20))
}

// Load reads config.yaml from path (if non-empty) or the working directory, then
// applies PRESUPUESTOS_* environment overrides. DATABASE_URL, REDIS_ADDR and
// JWT_SECRET are honoured without the prefix as well.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database.url", envPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", envPrefix+"_REDIS_ADDR", "REDIS_ADDR")
	_ = v.BindEnv("auth.jwt_secret", envPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("server.cors_origins", envPrefix+"_SERVER_CORS_ORIGINS", "CORS_ORIGINS")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// A comma separated env value arrives as a single element.
	if len(cfg.Server.CORSOrigins) == 1 && strings.Contains(cfg.Server.CORSOrigins[0], ",") {
		cfg.Server.CORSOrigins = strings.Split(cfg.Server.CORSOrigins[0], ",")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("config: auth.access_token_ttl must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("config: rate_limit values must be positive")
	}
	if c.Import.MaxUploadBytes <= 0 {
		return errors.New("config: import.max_upload_bytes must be positive")
	}
	return nil
}
