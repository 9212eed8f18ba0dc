package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/treesim/domain"
)

// CompareUseCase orchestrates tree comparison operations
type CompareUseCase struct {
	service      domain.CompareService
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
}

// NewCompareUseCase creates a new compare use case with the given dependencies
func NewCompareUseCase(
	service domain.CompareService,
	formatter domain.CompareOutputFormatter,
	configLoader domain.CompareConfigurationLoader,
) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute executes the compare use case
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if !req.HasValidOutputWriter() {
		return domain.NewInvalidArgumentError("no valid output writer specified")
	}

	response, err := uc.service.Compare(ctx, &req)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	if err := uc.formatter.Write(response, req.OutputFormat, req.OutputWriter); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return nil
}

// LoadRequest resolves the effective request: configuration file values
// overlaid with the explicit request
func (uc *CompareUseCase) LoadRequest(req domain.CompareRequest) (domain.CompareRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}
	base, err := uc.configLoader.LoadConfig(req.ConfigPath)
	if err != nil {
		return req, err
	}
	return *uc.configLoader.MergeConfig(base, &req), nil
}

// CompareUseCaseBuilder assembles a use case from parts, with defaults
// for anything not supplied
type CompareUseCaseBuilder struct {
	service      domain.CompareService
	formatter    domain.CompareOutputFormatter
	configLoader domain.CompareConfigurationLoader
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the compare service
func (b *CompareUseCaseBuilder) WithService(service domain.CompareService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.CompareOutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *CompareUseCaseBuilder) WithConfigLoader(loader domain.CompareConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = loader
	return b
}

// Build creates the use case
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewCompareUseCase(b.service, b.formatter, b.configLoader), nil
}
