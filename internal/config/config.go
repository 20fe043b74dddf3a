package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigDirName is the per-tree configuration directory.
const ConfigDirName = ".depmap"

// Read policies for individual file read failures during a build.
const (
	// ReadPolicySkip logs a warning and continues without the file.
	ReadPolicySkip = "skip"
	// ReadPolicyStrict aborts the whole build on the first read failure.
	ReadPolicyStrict = "strict"
)

// Config represents the complete depmap configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Scan    ScanConfig              `json:"scan" mapstructure:"scan"`
	Markers map[string]MarkerConfig `json:"markers,omitempty" mapstructure:"markers"`
	Build   BuildConfig             `json:"build" mapstructure:"build"`
	Logging LoggingConfig           `json:"logging" mapstructure:"logging"`
}

// ScanConfig contains file discovery configuration
type ScanConfig struct {
	// Extensions limits discovery to these file extensions. Empty means
	// "every extension a registered import marker covers".
	Extensions []string `json:"extensions,omitempty" mapstructure:"extensions"`

	// IgnoreDirs are directory names skipped during the walk
	IgnoreDirs []string `json:"ignoreDirs" mapstructure:"ignoreDirs"`

	// MaxFileSizeBytes skips files larger than this
	MaxFileSizeBytes int `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`

	// UseGitignore honors the root .gitignore during discovery
	UseGitignore bool `json:"useGitignore" mapstructure:"useGitignore"`
}

// MarkerConfig overrides or adds an import marker for a language
type MarkerConfig struct {
	Extensions []string `json:"extensions" mapstructure:"extensions"`
	Token      string   `json:"token" mapstructure:"token"`
}

// BuildConfig contains graph build configuration
type BuildConfig struct {
	// ReadPolicy is "skip" or "strict"
	ReadPolicy string `json:"readPolicy" mapstructure:"readPolicy"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Scan: ScanConfig{
			IgnoreDirs:       []string{".git", ".depmap", "node_modules", "vendor", "zig-cache", "zig-out"},
			MaxFileSizeBytes: 1024 * 1024,
			UseGitignore:     true,
		},
		Build: BuildConfig{
			ReadPolicy: ReadPolicySkip,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "human",
		},
	}
}

// LoadConfig loads configuration from <root>/.depmap/config.json.
// A missing config file yields the defaults.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ConfigDirName))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to <root>/.depmap/config.json.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	switch c.Build.ReadPolicy {
	case "", ReadPolicySkip, ReadPolicyStrict:
	default:
		return fmt.Errorf("config: unknown readPolicy %q", c.Build.ReadPolicy)
	}

	if c.Scan.MaxFileSizeBytes < 0 {
		return fmt.Errorf("config: negative maxFileSizeBytes %d", c.Scan.MaxFileSizeBytes)
	}

	for lang, m := range c.Markers {
		if m.Token == "" {
			return fmt.Errorf("config: marker for %q has empty token", lang)
		}
		if len(m.Extensions) == 0 {
			return fmt.Errorf("config: marker for %q lists no extensions", lang)
		}
	}

	return nil
}
