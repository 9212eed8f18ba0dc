package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Compare holds metric configuration
	Compare CompareConfig `mapstructure:"compare" toml:"compare" yaml:"compare"`

	// Encoder holds sentence encoder configuration
	Encoder EncoderConfig `mapstructure:"encoder" toml:"encoder" yaml:"encoder"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output"`
}

// CompareConfig configures the distance metric
type CompareConfig struct {
	// Normalize rescales distances into [0, 1)
	Normalize bool `mapstructure:"normalize" toml:"normalize" yaml:"normalize"`

	// Unordered ignores sibling order
	Unordered bool `mapstructure:"unordered" toml:"unordered" yaml:"unordered"`

	// UseContext prefixes each label with its ancestor path before encoding
	UseContext bool `mapstructure:"use_context" toml:"use_context" yaml:"use_context"`

	// Depth truncates trees before comparing; 0 means no limit
	Depth int `mapstructure:"depth" toml:"depth" yaml:"depth"`

	// Averaged computes the depth-averaged normalized distance
	Averaged bool `mapstructure:"averaged" toml:"averaged" yaml:"averaged"`
}

// EncoderConfig configures the sentence encoder and embedding distance
type EncoderConfig struct {
	// Type selects the encoder: "openai" or "lexical"
	Type string `mapstructure:"type" toml:"type" yaml:"type"`

	// Model is the embeddings model name (openai encoder)
	Model string `mapstructure:"model" toml:"model" yaml:"model"`

	// Dimensions is the hashed vector width (lexical encoder)
	Dimensions int `mapstructure:"dimensions" toml:"dimensions" yaml:"dimensions"`

	// Distance selects the embedding distance: "cosine" or "euclidean"
	Distance string `mapstructure:"distance" toml:"distance" yaml:"distance"`

	// APIKeyEnvVar names the environment variable holding the API key
	APIKeyEnvVar string `mapstructure:"api_key_env_var" toml:"api_key_env_var" yaml:"api_key_env_var"`
}

// OutputConfig configures result output
type OutputConfig struct {
	// Format is one of text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format" yaml:"format"`

	// ShowDepthScores includes the per-depth breakdown in averaged mode
	ShowDepthScores bool `mapstructure:"show_depth_scores" toml:"show_depth_scores" yaml:"show_depth_scores"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Normalize:  true,
			Unordered:  true,
			UseContext: false,
			Depth:      0,
			Averaged:   false,
		},
		Encoder: EncoderConfig{
			Type:         "lexical",
			Model:        "text-embedding-3-small",
			Dimensions:   256,
			Distance:     "cosine",
			APIKeyEnvVar: "OPENAI_API_KEY",
		},
		Output: OutputConfig{
			Format:          "text",
			ShowDepthScores: false,
		},
	}
}

// LoadConfig loads configuration from the specified file, or from a
// discovered default file when configPath is empty
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		".treesim.toml",
		"treesim.toml",
		".treesim.yaml",
		".treesim.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	switch c.Compare.Depth {
	case 0:
	default:
		if c.Compare.Depth < 1 {
			return fmt.Errorf("compare.depth must be a positive integer, got %d", c.Compare.Depth)
		}
	}

	switch c.Encoder.Type {
	case "openai", "lexical":
	default:
		return fmt.Errorf("encoder.type must be openai or lexical, got %q", c.Encoder.Type)
	}

	switch c.Encoder.Distance {
	case "cosine", "euclidean":
	default:
		return fmt.Errorf("encoder.distance must be cosine or euclidean, got %q", c.Encoder.Distance)
	}

	if c.Encoder.Dimensions < 0 {
		return fmt.Errorf("encoder.dimensions must be positive, got %d", c.Encoder.Dimensions)
	}

	switch c.Output.Format {
	case "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("output.format must be text, json, yaml, or csv, got %q", c.Output.Format)
	}

	return nil
}
