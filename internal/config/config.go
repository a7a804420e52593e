// Package config provides the configuration structure for the nsw-normalizer.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultSplitCacheSize = 1024
	defaultOutputDir      = "output"
)

var (
	// ErrNATSURLEmpty indicates that the NATS URL is missing.
	ErrNATSURLEmpty = errors.New("nats url cannot be empty")
	// ErrSubjectEmpty indicates that the inbound subject is missing.
	ErrSubjectEmpty = errors.New("text processed subject cannot be empty")
	// ErrBucketEmpty indicates that the object store bucket is missing.
	ErrBucketEmpty = errors.New("object store bucket cannot be empty")
	// ErrSplitCacheSize indicates a negative split cache size.
	ErrSplitCacheSize = errors.New("split cache size must not be negative")
)

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                   string `toml:"url"`
	TextProcessedSubject  string `toml:"text_processed_subject"`
	TextNormalizedSubject string `toml:"text_normalized_subject"`
	ObjectStoreBucket     string `toml:"object_store_bucket"`
}

// NormalizerConfig holds the settings of the normalization pipeline.
type NormalizerConfig struct {
	// DictionaryPath points to a CMU-format pronunciation dictionary, optionally
	// zstd compressed. The embedded seed dictionary is used when empty.
	DictionaryPath string `toml:"dictionary_path"`
	SplitCacheSize int    `toml:"split_cache_size"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
	OutputDir   string `toml:"output_dir"`
}

// Config is the root configuration structure.
type Config struct {
	NATS       NATSConfig       `toml:"nats"`
	Normalizer NormalizerConfig `toml:"normalizer"`
	Paths      PathsConfig      `toml:"paths"`
}

// Load loads the configuration for the service.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadFile decodes the TOML file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration %q: %w", path, err)
	}

	var cfg Config

	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration %q: %w", path, err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config

	cfg.applyDefaults()

	return &cfg
}

// Validate checks the fields the NATS service needs.
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return ErrNATSURLEmpty
	}

	if c.NATS.TextProcessedSubject == "" {
		return ErrSubjectEmpty
	}

	if c.NATS.ObjectStoreBucket == "" {
		return ErrBucketEmpty
	}

	if c.Normalizer.SplitCacheSize < 0 {
		return fmt.Errorf("%w: got %d", ErrSplitCacheSize, c.Normalizer.SplitCacheSize)
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Normalizer.SplitCacheSize == 0 {
		c.Normalizer.SplitCacheSize = defaultSplitCacheSize
	}

	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = defaultOutputDir
	}

	if c.Paths.BaseLogsDir == "" {
		c.Paths.BaseLogsDir = os.TempDir()
	}
}
