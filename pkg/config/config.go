package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"coursebook/pkg/logger"
)

type Config struct {
	Host string
	Port string

	// StateDir holds app-owned state: the directory-handle registry and the
	// fallback key-value store. Distinct from the user-chosen data directory.
	StateDir string

	CacheTTL       time.Duration
	StorageTimeout time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Host:     getEnvStr(EnvHost, DefaultHost),
		Port:     getEnvStr(EnvPort, DefaultPort),
		StateDir: getEnvStr(EnvStateDir, defaultStateDir()),

		CacheTTL:       getEnvDuration(EnvCacheTTL, DefaultCacheTTL),
		StorageTimeout: getEnvDuration(EnvStorageTimeout, DefaultStorageTimeout),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:   getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:  getEnvStr(EnvLogFormat, DefaultLogFormat),
			Service: serviceName,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	return cfg
}

func (cfg *Config) Validate() error {
	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got: %s", cfg.Port)
	}
	if cfg.StateDir == "" {
		return fmt.Errorf("state directory must not be empty")
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", cfg.CacheTTL)
	}
	if cfg.StorageTimeout <= 0 {
		return fmt.Errorf("storage timeout must be positive, got: %s", cfg.StorageTimeout)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"host", cfg.Host,
		"port", cfg.Port,
		"state_dir", cfg.StateDir,
		"cache_ttl", cfg.CacheTTL.String(),
		"storage_timeout", cfg.StorageTimeout.String(),
		"request_timeout", cfg.RequestTimeout.String(),
		"max_request_size", cfg.MaxRequestSize,
	)
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".coursebook"
	}
	return filepath.Join(base, "coursebook")
}

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
