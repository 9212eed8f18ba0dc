package service

import (
	"strings"

	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/internal/config"
)

// CompareConfigLoader implements the domain.CompareConfigurationLoader interface
type CompareConfigLoader struct{}

// NewCompareConfigLoader creates a new configuration loader
func NewCompareConfigLoader() *CompareConfigLoader {
	return &CompareConfigLoader{}
}

// LoadConfig loads comparison defaults from a config file. An explicit
// .toml path goes through the strict TOML loader; otherwise discovery is
// delegated to viper.
func (l *CompareConfigLoader) LoadConfig(path string) (*domain.CompareRequest, error) {
	var cfg *config.Config
	var err error
	if strings.HasSuffix(path, ".toml") {
		cfg, err = config.LoadTOML(path)
	} else {
		cfg, err = config.LoadConfig(path)
	}
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	req := domain.DefaultCompareRequest()
	req.Normalize = cfg.Compare.Normalize
	req.Unordered = cfg.Compare.Unordered
	req.UseContext = cfg.Compare.UseContext
	req.Depth = cfg.Compare.Depth
	req.Averaged = cfg.Compare.Averaged
	req.Encoder = domain.EncoderType(cfg.Encoder.Type)
	req.Model = cfg.Encoder.Model
	req.Dimensions = cfg.Encoder.Dimensions
	req.Distance = domain.DistanceType(cfg.Encoder.Distance)
	req.APIKeyEnvVar = cfg.Encoder.APIKeyEnvVar
	req.OutputFormat = domain.OutputFormat(cfg.Output.Format)
	req.ShowDepthScores = cfg.Output.ShowDepthScores
	return &req, nil
}

// MergeConfig merges loaded configuration with explicit request values.
// The request wins for everything it states: paths, writer, patterns,
// and any scalar that differs from its zero value. Boolean flags cannot
// be distinguished from "unset" here, so the CLI applies those onto the
// loaded base only when the user passed them explicitly.
func (l *CompareConfigLoader) MergeConfig(base *domain.CompareRequest, req *domain.CompareRequest) *domain.CompareRequest {
	merged := *base

	merged.PathA = req.PathA
	merged.PathB = req.PathB
	merged.OutputWriter = req.OutputWriter
	merged.ConfigPath = req.ConfigPath
	merged.NoProgress = req.NoProgress

	if len(req.IncludePatterns) > 0 {
		merged.IncludePatterns = req.IncludePatterns
	}
	if len(req.ExcludePatterns) > 0 {
		merged.ExcludePatterns = req.ExcludePatterns
	}
	if req.Depth > 0 {
		merged.Depth = req.Depth
	}
	if req.Encoder != "" {
		merged.Encoder = req.Encoder
	}
	if req.Model != "" {
		merged.Model = req.Model
	}
	if req.Dimensions > 0 {
		merged.Dimensions = req.Dimensions
	}
	if req.Distance != "" {
		merged.Distance = req.Distance
	}
	if req.APIKeyEnvVar != "" {
		merged.APIKeyEnvVar = req.APIKeyEnvVar
	}
	if req.OutputFormat != "" {
		merged.OutputFormat = req.OutputFormat
	}
	if req.Timeout > 0 {
		merged.Timeout = req.Timeout
	}

	return &merged
}
