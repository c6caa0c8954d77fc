package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent recall configuration stored as
// config.toml in the .recall/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version int           `toml:"version"`
	Storage StorageConfig `toml:"storage"`
	Session SessionConfig `toml:"session"`
	Context ContextConfig `toml:"context"`
	Worker  WorkerConfig  `toml:"worker"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects and parameterizes the durable store backend.
type StorageConfig struct {
	// Provider is one of "sqlite", "postgres", or "memory".
	Provider    string `toml:"provider,omitempty"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresURL string `toml:"postgres_url,omitempty"`
}

// SessionConfig holds short-term buffer settings.
type SessionConfig struct {
	Capacity int `toml:"capacity,omitempty"`
}

// ContextConfig holds context assembly settings.
type ContextConfig struct {
	MaxChars int `toml:"max_chars,omitempty"`
}

// WorkerConfig holds async persistence pool settings.
type WorkerConfig struct {
	Workers   uint `toml:"workers,omitempty"`
	QueueSize uint `toml:"queue_size,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `toml:"debug,omitempty"`
	JSON  bool `toml:"json,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"storage.provider": {
		get: func(c *Config) string { return c.Storage.Provider },
		set: func(c *Config, v string) error { c.Storage.Provider = v; return nil },
	},
	"storage.sqlite_path": {
		get: func(c *Config) string { return c.Storage.SQLitePath },
		set: func(c *Config, v string) error { c.Storage.SQLitePath = v; return nil },
	},
	"storage.postgres_url": {
		get: func(c *Config) string { return c.Storage.PostgresURL },
		set: func(c *Config, v string) error { c.Storage.PostgresURL = v; return nil },
	},
	"session.capacity": {
		get: func(c *Config) string { return strconv.Itoa(c.Session.Capacity) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("session.capacity must be an integer: %w", err)
			}
			c.Session.Capacity = n
			return nil
		},
	},
	"context.max_chars": {
		get: func(c *Config) string { return strconv.Itoa(c.Context.MaxChars) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("context.max_chars must be an integer: %w", err)
			}
			c.Context.MaxChars = n
			return nil
		},
	},
	"worker.workers": {
		get: func(c *Config) string { return strconv.FormatUint(uint64(c.Worker.Workers), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("worker.workers must be an unsigned integer: %w", err)
			}
			c.Worker.Workers = uint(n)
			return nil
		},
	},
	"worker.queue_size": {
		get: func(c *Config) string { return strconv.FormatUint(uint64(c.Worker.QueueSize), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				return fmt.Errorf("worker.queue_size must be an unsigned integer: %w", err)
			}
			c.Worker.QueueSize = uint(n)
			return nil
		},
	},
	"log.debug": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.Debug) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("log.debug must be a boolean: %w", err)
			}
			c.Log.Debug = b
			return nil
		},
	},
	"log.json": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.JSON) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("log.json must be a boolean: %w", err)
			}
			c.Log.JSON = b
			return nil
		},
	},
}

// Get returns the string form of the value for a dotted config key.
func (c *Config) Get(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return info.get(c), nil
}

// Set parses and applies a string value for a dotted config key.
func (c *Config) Set(key, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	return info.set(c, value)
}
