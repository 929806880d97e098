package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/spf13/viper"
)

// Config holds all configuration for the site
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Search    SearchConfig    `mapstructure:"search"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Listen   string `mapstructure:"listen"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Normalize applies defaults for unset server values.
func (s ServerConfig) Normalize() ServerConfig {
	if s.ReadTimeout <= 0 {
		s.ReadTimeout = 10 * time.Second
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
	return s
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

// StorageConfig contains storage and persistence settings
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	// Reports selects where report documents live: "redis" or "postgres".
	Reports string `mapstructure:"reports"`
}

const (
	ReportsRedis    = "redis"
	ReportsPostgres = "postgres"
)

func (s StorageConfig) Validate() error {
	if err := s.Postgres.Validate(); err != nil {
		return err
	}
	switch s.Reports {
	case ReportsRedis:
		return s.Redis.Validate()
	case ReportsPostgres:
		return nil
	default:
		return fmt.Errorf("storage.reports must be %q or %q, got %q", ReportsRedis, ReportsPostgres, s.Reports)
	}
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	return nil
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	DBName   string        `mapstructure:"dbname"`
	SSLMode  string        `mapstructure:"sslmode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("storage.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("storage.postgres.dbname required when url is not provided")
	}
	return nil
}

// DSN returns the connection string, building it from parts when no url is set.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

// SearchConfig selects the bill search strategy.
type SearchConfig struct {
	// Engine is "substring" (ILIKE on titles) or "index" (bleve).
	Engine      string `mapstructure:"engine"`
	IndexPath   string `mapstructure:"index_path"`
	ReindexCron string `mapstructure:"reindex_cron"`
}

const (
	SearchEngineSubstring = "substring"
	SearchEngineIndex     = "index"
)

func (s SearchConfig) Normalize() SearchConfig {
	s.Engine = strings.ToLower(strings.TrimSpace(s.Engine))
	if s.Engine == "" {
		s.Engine = SearchEngineSubstring
	}
	if strings.TrimSpace(s.ReindexCron) == "" {
		s.ReindexCron = "@hourly"
	}
	return s
}

func (s SearchConfig) Validate() error {
	switch s.Engine {
	case SearchEngineSubstring:
		return nil
	case SearchEngineIndex:
		if _, err := cronexpr.Parse(s.ReindexCron); err != nil {
			return fmt.Errorf("search.reindex_cron: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("search.engine must be %q or %q, got %q", SearchEngineSubstring, SearchEngineIndex, s.Engine)
	}
}

// LoadConfig loads config from file and CAPITOL_* environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.SetDefault("general.log_level", "info")
	v.SetDefault("general.listen", ":10001")
	v.SetDefault("storage.postgres.port", "5432")
	v.SetDefault("storage.postgres.sslmode", "disable")
	v.SetDefault("storage.postgres.timeout", 5*time.Second)
	v.SetDefault("storage.redis.port", "6379")
	v.SetDefault("storage.redis.timeout", 5*time.Second)
	v.SetDefault("storage.reports", ReportsRedis)
	v.SetDefault("search.engine", SearchEngineSubstring)
	v.SetDefault("search.reindex_cron", "@hourly")
	v.SetDefault("telemetry.metrics_enabled", true)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		v.AddConfigPath(exeDir)
		v.AddConfigPath(filepath.Join(exeDir, "..", "config"))
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("CAPITOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// env-only deployments have no file to find
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	// AutomaticEnv only resolves keys viper already knows about
	for _, key := range []string{
		"storage.postgres.url", "storage.postgres.host", "storage.postgres.user",
		"storage.postgres.password", "storage.postgres.dbname",
		"storage.redis.host", "storage.redis.password", "storage.redis.db",
		"search.index_path", "general.debug",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server = cfg.Server.Normalize()
	cfg.Search = cfg.Search.Normalize()
	if cfg.General.Listen != "" && !strings.Contains(cfg.General.Listen, ":") {
		cfg.General.Listen = ":" + cfg.General.Listen
	}

	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
