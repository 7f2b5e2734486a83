// Package config loads docvec's YAML configuration.
//
// Secrets never live in the file itself: the config names environment
// variables (api_key_env, token_env) and the values are resolved at load
// time, after an optional .env file has been applied.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfigRequired is returned when the config file does not exist.
var ErrConfigRequired = errors.New("config file required")

// EmbedderConfig selects and configures the embedding provider.
type EmbedderConfig struct {
	Provider  string `yaml:"provider"`
	Host      string `yaml:"host"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`

	// APIKey is resolved from APIKeyEnv at load time; never set in YAML.
	APIKey string `yaml:"-"`
}

// AstraConfig contains connection details for an Astra DB Data API endpoint.
type AstraConfig struct {
	Endpoint    string `yaml:"endpoint"`
	TokenEnv    string `yaml:"token_env"`
	Namespace   string `yaml:"namespace"`
	TimeoutSecs int    `yaml:"timeout_secs"`

	// Token is resolved from TokenEnv at load time; never set in YAML.
	Token string `yaml:"-"`
}

// StoreConfig selects and configures the vector store implementation.
type StoreConfig struct {
	Type  string       `yaml:"type"`
	Astra *AstraConfig `yaml:"astra,omitempty"`
}

// ChunkingConfig configures the split window geometry.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// DedupeConfig configures duplicate detection scope.
//
// Scope "global" remembers fingerprints across runs in a local database at
// Path; scope "batch" only deduplicates within a single invocation.
type DedupeConfig struct {
	Scope string `yaml:"scope"`
	Path  string `yaml:"path"`
}

// Config is the root configuration structure.
type Config struct {
	Embedder EmbedderConfig `yaml:"embedder"`
	Store    StoreConfig    `yaml:"store"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Dedupe   DedupeConfig   `yaml:"dedupe"`
}

const (
	StoreTypeAstra  = "astra"
	StoreTypeMemory = "memory"

	DedupeScopeGlobal = "global"
	DedupeScopeBatch  = "batch"
)

// Load reads and validates the config at path. A missing file is an error;
// ingestion talks to paid remote services and should not run on guessed
// defaults.
func Load(path string) (*Config, error) {
	// Populate the environment from .env if one is present.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigRequired, path)
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.resolveEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when the file omits a field.
func Default() *Config {
	return &Config{
		Embedder: EmbedderConfig{
			Provider: "ollama",
			Host:     "http://localhost:11434",
			Model:    "all-minilm",
		},
		Store: StoreConfig{
			Type: StoreTypeAstra,
			Astra: &AstraConfig{
				TokenEnv:    "ASTRA_DB_APPLICATION_TOKEN",
				Namespace:   "default_keyspace",
				TimeoutSecs: 30,
			},
		},
		Chunking: ChunkingConfig{
			Size:    2500,
			Overlap: 250,
		},
		Dedupe: DedupeConfig{
			Scope: DedupeScopeGlobal,
			Path:  "docvec.db",
		},
	}
}

func (c *Config) resolveEnv() {
	if c.Embedder.APIKeyEnv != "" {
		c.Embedder.APIKey = os.Getenv(c.Embedder.APIKeyEnv)
	}
	if c.Store.Astra != nil && c.Store.Astra.TokenEnv != "" {
		c.Store.Astra.Token = os.Getenv(c.Store.Astra.TokenEnv)
	}
}

// Validate checks structural invariants. Connectivity is not checked here.
func (c *Config) Validate() error {
	if c.Chunking.Size <= 0 {
		return errors.New("chunking.size must be positive")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return errors.New("chunking.overlap must be non-negative and smaller than chunking.size")
	}

	switch c.Store.Type {
	case StoreTypeAstra:
		if c.Store.Astra == nil || c.Store.Astra.Endpoint == "" {
			return errors.New("store.astra.endpoint is required")
		}
	case StoreTypeMemory:
	default:
		return fmt.Errorf("unknown store.type %q", c.Store.Type)
	}

	switch c.Dedupe.Scope {
	case DedupeScopeGlobal:
		if c.Dedupe.Path == "" {
			return errors.New("dedupe.path is required for global scope")
		}
	case DedupeScopeBatch:
	default:
		return fmt.Errorf("unknown dedupe.scope %q", c.Dedupe.Scope)
	}

	return nil
}

// AstraTimeout returns the configured store timeout as a duration.
func (c *Config) AstraTimeout() time.Duration {
	if c.Store.Astra == nil || c.Store.Astra.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Store.Astra.TimeoutSecs) * time.Second
}
