package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerEnv holds HTTP server settings read from the environment.
type ServerEnv struct {
	MaxBodyBytes    int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// NewServerEnv reads MAX_BODY_BYTES (default 1 MiB), REQUEST_TIMEOUT_SECONDS
// (default 30) and SHUTDOWN_TIMEOUT_SECONDS (default 10).
func NewServerEnv() (*ServerEnv, error) {
	maxBody, err := envInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := envInt("REQUEST_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := envInt("SHUTDOWN_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}

	env := &ServerEnv{
		MaxBodyBytes:    int64(maxBody),
		RequestTimeout:  time.Duration(requestTimeout) * time.Second,
		ShutdownTimeout: time.Duration(shutdownTimeout) * time.Second,
	}

	if err := env.normalize(); err != nil {
		return nil, err
	}

	return env, nil
}

// normalize validates the settings.
func (e *ServerEnv) normalize() error {
	if e.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024, got: %d", e.MaxBodyBytes)
	}
	if e.RequestTimeout < time.Second {
		return fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be at least 1, got: %s", e.RequestTimeout)
	}
	if e.ShutdownTimeout < time.Second {
		return fmt.Errorf("SHUTDOWN_TIMEOUT_SECONDS must be at least 1, got: %s", e.ShutdownTimeout)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
