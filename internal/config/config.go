package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// Config is the runtime configuration of the reqdump service.
type Config struct {
	Address         string
	ReadBufferSize  int
	MaxRequestBytes int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Strict          bool
	SingleRead      bool
	Reply           bool
	Color           bool
	MaxBodyRender   int
	LogLevel        string
}

type fileConfig struct {
	Address         string `toml:"address"`
	ReadBufferSize  int    `toml:"read_buffer_size"`
	MaxRequestBytes int    `toml:"max_request_bytes"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	Strict          bool   `toml:"strict"`
	SingleRead      bool   `toml:"single_read"`
	Reply           bool   `toml:"reply"`
	Color           bool   `toml:"color"`
	MaxBodyRender   int    `toml:"max_body_render"`
	LogLevel        string `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Address:         "127.0.0.1:8080",
		ReadBufferSize:  4096,
		MaxRequestBytes: 1 << 20,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    5 * time.Second,
		Color:           true,
		MaxBodyRender:   1024,
		LogLevel:        "info",
	}
}

// Load reads a TOML file on top of Default. Keys missing from the file keep
// their default value. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config load failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("address") {
		cfg.Address = strings.TrimSpace(raw.Address)
	}
	if meta.IsDefined("read_buffer_size") {
		cfg.ReadBufferSize = raw.ReadBufferSize
	}
	if meta.IsDefined("max_request_bytes") {
		cfg.MaxRequestBytes = raw.MaxRequestBytes
	}
	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}
	if meta.IsDefined("write_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.WriteTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse write_timeout: %w", err)
		}
		cfg.WriteTimeout = d
	}
	if meta.IsDefined("strict") {
		cfg.Strict = raw.Strict
	}
	if meta.IsDefined("single_read") {
		cfg.SingleRead = raw.SingleRead
	}
	if meta.IsDefined("reply") {
		cfg.Reply = raw.Reply
	}
	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}
	if meta.IsDefined("max_body_render") {
		cfg.MaxBodyRender = raw.MaxBodyRender
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values Load cannot catch while decoding.
func Validate(cfg Config) error {
	if cfg.Address == "" {
		return fmt.Errorf("address is required")
	}
	if cfg.ReadBufferSize <= 0 {
		return fmt.Errorf("read_buffer_size must be positive, got %d", cfg.ReadBufferSize)
	}
	if cfg.MaxRequestBytes <= 0 {
		return fmt.Errorf("max_request_bytes must be positive, got %d", cfg.MaxRequestBytes)
	}
	if cfg.ReadBufferSize > cfg.MaxRequestBytes {
		return fmt.Errorf("read_buffer_size (%d) exceeds max_request_bytes (%d)", cfg.ReadBufferSize, cfg.MaxRequestBytes)
	}
	// zero would let an idle client hold a connection open indefinitely
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read_timeout must be positive, got %s", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout < 0 {
		return fmt.Errorf("write_timeout must not be negative, got %s", cfg.WriteTimeout)
	}
	if cfg.MaxBodyRender < 0 {
		return fmt.Errorf("max_body_render must not be negative, got %d", cfg.MaxBodyRender)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}
