package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "SMARTPOS"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	API     APIConfig     `mapstructure:"api"`
	Assets  AssetsConfig  `mapstructure:"assets"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Notice  NoticeConfig  `mapstructure:"notice"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr" validate:"required"`
	GRPCAddr        string        `mapstructure:"grpc_addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Display         bool          `mapstructure:"display"`
}

type StorageConfig struct {
	Backend   string `mapstructure:"backend" validate:"oneof=memory redis mysql"`
	RedisAddr string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	MySQLDSN  string `mapstructure:"mysql_dsn" validate:"required_if=Backend mysql"`
}

type APIConfig struct {
	// BaseURL seeds the endpoint until one is saved in settings.
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Cashier string        `mapstructure:"cashier"`
}

type AssetsConfig struct {
	CacheName string   `mapstructure:"cache_name"`
	Origin    string   `mapstructure:"origin"`
	Files     []string `mapstructure:"files"`
	Install   bool     `mapstructure:"install"`
}

type ScanConfig struct {
	QueueSize int `mapstructure:"queue_size" validate:"gt=0"`
}

type NoticeConfig struct {
	Capacity int `mapstructure:"capacity" validate:"gte=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format" validate:"oneof=text json"`
	Output     string `mapstructure:"output" validate:"oneof=stdout file both"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.grpc_addr", ":50051")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.display", true)

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.mysql_dsn", "root:root@tcp(localhost:3306)/smartpos?parseTime=true")

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.cashier", "SmartPOS")

	v.SetDefault("assets.cache_name", "smartpos-v1")
	v.SetDefault("assets.origin", "")
	v.SetDefault("assets.files", []string{
		"index.html",
		"assets/css/theme.css",
		"assets/js/app.js",
		"assets/icons/green-192.png",
		"assets/icons/green-512.png",
	})
	v.SetDefault("assets.install", false)

	v.SetDefault("scan.queue_size", 256)
	v.SetDefault("notice.capacity", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/smartpos.log")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)
}

// Load reads an optional .env file, then the YAML file at path, then
// SMARTPOS_* environment overrides such as SMARTPOS_STORAGE_BACKEND.
// An empty path skips the file; a missing .env is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
