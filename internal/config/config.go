package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the defscope API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Search  SearchConfig  `yaml:"search"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CorpusConfig holds corpus store settings.
type CorpusConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// IngestConfig holds classification pipeline settings.
type IngestConfig struct {
	PoolSize     int `yaml:"pool_size"` // 0 = half the CPUs
	MaxBatchSize int `yaml:"max_batch_size"`
}

// SearchConfig holds search and analytics settings.
type SearchConfig struct {
	MaxQueryLength int `yaml:"max_query_length"`
	AnalyticsTopK  int `yaml:"analytics_top_k"`
}

// LexiconConfig holds lexicon override settings.
type LexiconConfig struct {
	Path string `yaml:"path"` // empty = builtin vocabulary only
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Driver == "" {
		c.Corpus.Driver = "memory"
	}
	if c.Corpus.ReadinessTimeout <= 0 {
		c.Corpus.ReadinessTimeout = 10
	}
	if c.Corpus.KeyPrefix == "" {
		c.Corpus.KeyPrefix = "defscope:"
	}
	if c.Ingest.MaxBatchSize <= 0 {
		c.Ingest.MaxBatchSize = 500
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 256
	}
	if c.Search.AnalyticsTopK <= 0 {
		c.Search.AnalyticsTopK = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Corpus.Driver {
	case "memory":
		// no addrs needed
	case "redis":
		if len(c.Corpus.Addrs) == 0 {
			return fmt.Errorf("corpus.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("corpus.driver must be \"memory\" or \"redis\", got %q", c.Corpus.Driver)
	}
	if c.Ingest.PoolSize < 0 {
		return fmt.Errorf("ingest.pool_size must not be negative, got %d", c.Ingest.PoolSize)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
