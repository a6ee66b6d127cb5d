package config

import "time"

const (
	// Bound to loopback: the app is single-user and local-first.
	DefaultHost = "127.0.0.1"
	DefaultPort = "8090"

	DefaultCacheTTL       = 5 * time.Minute
	DefaultStorageTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultRequestTimeout = 15 * time.Second
	DefaultMaxRequestSize = 1 << 20 // 1 MiB

	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Schedule lifecycle states, shared by model validation and services.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)
