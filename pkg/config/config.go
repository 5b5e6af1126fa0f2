// Package config loads signcanvas settings from a TOML file.
//
// The default location follows XDG: $XDG_CONFIG_HOME/signcanvas/config.toml,
// falling back to ~/.config/signcanvas/config.toml. A missing default file is
// not an error; defaults apply. Example:
//
//	[history]
//	capacity = 20
//
//	[recovery]
//	backend = "redis"
//	ttl = "168h"
//
//	[recovery.redis]
//	addr = "localhost:6379"
//
//	[log]
//	level = "debug"
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/history"
	"github.com/matzehuels/signcanvas/pkg/recovery"
)

const appName = "signcanvas"

// Recovery backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Config is the full settings file.
type Config struct {
	History  HistoryConfig  `toml:"history"`
	Recovery RecoveryConfig `toml:"recovery"`
	Log      LogConfig      `toml:"log"`
}

// HistoryConfig controls the undo/redo log.
type HistoryConfig struct {
	Capacity int `toml:"capacity"`
}

// RecoveryConfig selects and configures the recovery store.
type RecoveryConfig struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
	Timeout time.Duration `toml:"timeout"`
	Redis   RedisConfig   `toml:"redis"`
	Mongo   MongoConfig   `toml:"mongo"`
}

// RedisConfig is the [recovery.redis] table.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig is the [recovery.mongo] table.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// LogConfig is the [log] table.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills zero values.
func (c *Config) SetDefaults() {
	if c.History.Capacity == 0 {
		c.History.Capacity = history.DefaultCapacity
	}
	if c.Recovery.Backend == "" {
		c.Recovery.Backend = BackendFile
	}
	if c.Recovery.Dir == "" {
		if dir, err := DataDir(); err == nil {
			c.Recovery.Dir = filepath.Join(dir, "drafts")
		}
	}
	if c.Recovery.TTL == 0 {
		c.Recovery.TTL = recovery.DefaultTTL
	}
	if c.Recovery.Timeout == 0 {
		c.Recovery.Timeout = recovery.DefaultWriteTimeout
	}
	if c.Recovery.Redis.Addr == "" {
		c.Recovery.Redis.Addr = "localhost:6379"
	}
	if c.Recovery.Mongo.Database == "" {
		c.Recovery.Mongo.Database = recovery.DefaultMongoDatabase
	}
	if c.Recovery.Mongo.Collection == "" {
		c.Recovery.Mongo.Collection = recovery.DefaultMongoCollection
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.History.Capacity < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "history.capacity must be at least 1, got %d", c.History.Capacity)
	}
	switch c.Recovery.Backend {
	case BackendNone, BackendMemory:
	case BackendFile:
		if c.Recovery.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "recovery.dir is required for the file backend")
		}
	case BackendRedis:
		if c.Recovery.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "recovery.redis.addr is required")
		}
	case BackendMongo:
		if c.Recovery.Mongo.URI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "recovery.mongo.uri is required")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown recovery.backend %q", c.Recovery.Backend)
	}
	if c.Recovery.TTL < 0 || c.Recovery.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "recovery durations must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// LogLevel returns the parsed log level, or info when unparsable.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Load reads path, applies defaults and validates. An empty path means the
// default location, which may be absent.
func Load(path string) (*Config, error) {
	optional := false
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path, optional = p, true
	}

	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// OpenStore builds the recovery store selected by the config.
func (c RecoveryConfig) OpenStore(ctx context.Context) (recovery.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout())
	defer cancel()

	switch c.Backend {
	case BackendNone:
		return recovery.NewNullStore(), nil
	case BackendMemory:
		return recovery.NewMemoryStore(), nil
	case BackendFile:
		s, err := recovery.NewFileStore(c.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRecoveryStore, err, "open file store %s", c.Dir)
		}
		return s, nil
	case BackendRedis:
		s, err := recovery.NewRedisStore(ctx, recovery.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRecoveryStore, err, "open redis store")
		}
		return s, nil
	case BackendMongo:
		s, err := recovery.NewMongoStore(ctx, recovery.MongoConfig{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRecoveryStore, err, "open mongo store")
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown recovery backend %q", c.Backend)
}

func (c RecoveryConfig) connectTimeout() time.Duration {
	if c.Timeout > 0 {
		return 2 * c.Timeout
	}
	return 2 * recovery.DefaultWriteTimeout
}

// WriterOptions returns writer settings for the recovery writer.
func (c RecoveryConfig) WriterOptions(logger *log.Logger) recovery.WriterOptions {
	return recovery.WriterOptions{TTL: c.TTL, Timeout: c.Timeout, Logger: logger}
}
