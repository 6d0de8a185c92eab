// Package config loads client and server settings from defaults, an optional
// config file and BARKEEPER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/network"
	"github.com/iudanet/barkeeper/internal/client/queue"
	syncpkg "github.com/iudanet/barkeeper/internal/client/sync"
)

// EnvPrefix prefixes every environment override, e.g. BARKEEPER_SERVER_URL.
const EnvPrefix = "BARKEEPER"

// Log настройки логирования
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Sync настройки воспроизведения очереди
type Sync struct {
	syncpkg.Config `mapstructure:",squash"`
	MaxAttempts    int `mapstructure:"max_attempts"`
}

// Client настройки клиента
type Client struct {
	Log           Log            `mapstructure:"log"`
	ServerURL     string         `mapstructure:"server_url"`
	DBPath        string         `mapstructure:"db_path"`
	SchemaVersion string         `mapstructure:"schema_version"`
	Sync          Sync           `mapstructure:"sync"`
	Network       network.Config `mapstructure:"network"`
	ReadTimeout   time.Duration  `mapstructure:"read_timeout"`
	Realtime      bool           `mapstructure:"realtime"` // Realtime подписка на ленту изменений сервера
}

// RateLimit ограничение запросов с одного IP
type RateLimit struct {
	Requests     int           `mapstructure:"requests"`
	AuthRequests int           `mapstructure:"auth_requests"` // AuthRequests отдельный лимит для login/register
	Window       time.Duration `mapstructure:"window"`
}

// Server настройки сервера
type Server struct {
	Log             Log           `mapstructure:"log"`
	Addr            string        `mapstructure:"addr"`
	DBPath          string        `mapstructure:"db_path"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	RateLimit       RateLimit     `mapstructure:"rate_limit"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	IdempotencyTTL  time.Duration `mapstructure:"idempotency_ttl"`  // IdempotencyTTL сколько хранить ответы на мутации
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // CleanupInterval период очистки токенов и ключей
}

func setClientDefaults(v *viper.Viper) {
	netCfg := network.DefaultConfig()
	syncCfg := syncpkg.DefaultConfig()

	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("db_path", "barkeeper-client.db")
	v.SetDefault("schema_version", cache.CurrentSchemaVersion)
	v.SetDefault("read_timeout", 3*time.Second)
	v.SetDefault("realtime", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("network.failure_threshold", netCfg.FailureThreshold)
	v.SetDefault("network.degraded_grace", netCfg.DegradedGrace)
	v.SetDefault("network.offline_after", netCfg.OfflineAfter)
	v.SetDefault("network.debounce", netCfg.Debounce)
	v.SetDefault("network.probe_interval", netCfg.ProbeInterval)
	v.SetDefault("network.probe_timeout", netCfg.ProbeTimeout)

	v.SetDefault("sync.max_attempts", queue.DefaultMaxAttempts)
	v.SetDefault("sync.base_backoff", syncCfg.BaseBackoff)
	v.SetDefault("sync.max_backoff", syncCfg.MaxBackoff)
	v.SetDefault("sync.concurrency", syncCfg.Concurrency)
}

func setServerDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "barkeeper.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("access_token_ttl", 15*time.Minute)
	v.SetDefault("refresh_token_ttl", 30*24*time.Hour)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("idempotency_ttl", 7*24*time.Hour)
	v.SetDefault("cleanup_interval", time.Hour)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("rate_limit.requests", 300)
	v.SetDefault("rate_limit.auth_requests", 10)
	v.SetDefault("rate_limit.window", time.Minute)
}

// LoadClient reads the client configuration. path may be empty.
func LoadClient(path string) (*Client, error) {
	v, err := newViper(path, setClientDefaults)
	if err != nil {
		return nil, err
	}

	var cfg Client
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadServer reads the server configuration. path may be empty.
func LoadServer(path string) (*Server, error) {
	v, err := newViper(path, setServerDefaults)
	if err != nil {
		return nil, err
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newViper(path string, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return v, nil
}

// Validate checks values that would make the client misbehave.
func (c *Client) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server_url %q", c.ServerURL)
	}
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	if c.ReadTimeout <= 0 {
		return errors.New("read_timeout must be positive")
	}
	if c.Network.FailureThreshold <= 0 {
		return errors.New("network.failure_threshold must be positive")
	}
	if c.Network.ProbeInterval <= 0 || c.Network.ProbeTimeout <= 0 {
		return errors.New("network.probe_interval and network.probe_timeout must be positive")
	}
	if c.Network.Debounce < 0 {
		return errors.New("network.debounce must not be negative")
	}
	if c.Sync.MaxAttempts <= 0 {
		return errors.New("sync.max_attempts must be positive")
	}
	return nil
}

// Validate checks values the server cannot start without.
func (s *Server) Validate() error {
	if s.Addr == "" {
		return errors.New("addr is required")
	}
	if s.DBPath == "" {
		return errors.New("db_path is required")
	}
	// Короткий секрет делает HMAC подпись токенов подбираемой
	if len(s.JWTSecret) < 32 {
		return errors.New("jwt_secret must be at least 32 characters")
	}
	if s.AccessTokenTTL <= 0 || s.RefreshTokenTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if s.IdempotencyTTL <= 0 || s.CleanupInterval <= 0 {
		return errors.New("idempotency_ttl and cleanup_interval must be positive")
	}
	return nil
}
