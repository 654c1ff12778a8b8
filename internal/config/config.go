// Package config loads runtime settings from an optional .env file and
// STX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr           = ":8080"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultMaxUploadBytes = 32 << 20
	DefaultPreviewRows    = 200
	DefaultCSVCharset     = "windows-1252"
)

// Config holds the settings shared by the CLI and the HTTP server.
type Config struct {
	Addr           string
	StaticDir      string
	LogLevel       string
	LogFormat      string
	MaxUploadBytes int
	PreviewRows    int
	CSVCharset     string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:           DefaultAddr,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
		MaxUploadBytes: DefaultMaxUploadBytes,
		PreviewRows:    DefaultPreviewRows,
		CSVCharset:     DefaultCSVCharset,
	}
}

// Load reads ".env" from the working directory if present and then applies
// environment overrides on top of the defaults.
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an
// error; variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config load: %w", err)
		}
	}

	cfg := Default()
	cfg.Addr = envString("STX_ADDR", cfg.Addr)
	cfg.StaticDir = envString("STX_STATIC_DIR", cfg.StaticDir)
	cfg.LogLevel = envString("STX_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envString("STX_LOG_FORMAT", cfg.LogFormat)
	cfg.CSVCharset = envString("STX_CSV_CHARSET", cfg.CSVCharset)

	var err error
	if cfg.MaxUploadBytes, err = envInt("STX_MAX_UPLOAD_BYTES", cfg.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if cfg.PreviewRows, err = envInt("STX_PREVIEW_ROWS", cfg.PreviewRows); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks that numeric limits are usable.
func (c *Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.PreviewRows <= 0 {
		return fmt.Errorf("preview rows must be positive, got %d", c.PreviewRows)
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("listen address is empty")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s=%q: %w", key, v, err)
	}
	return n, nil
}
