package mcp

import (
	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/internal/config"
	"github.com/ludo-technologies/treesim/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildCompareService assembles a fresh compare service. Progress output
// is suppressed because MCP owns stdout for JSON-RPC.
func (d *Dependencies) BuildCompareService() domain.CompareService {
	return service.NewCompareService(service.NewNoOpProgressReporter())
}

// BaseRequest resolves the request defaults from the configured file,
// falling back to built-in defaults when no config can be loaded.
func (d *Dependencies) BaseRequest() *domain.CompareRequest {
	loader := service.NewCompareConfigLoader()
	base, err := loader.LoadConfig(d.configPath)
	if err != nil || base == nil {
		def := domain.DefaultCompareRequest()
		return &def
	}
	return base
}
