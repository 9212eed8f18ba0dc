package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/treesim/internal/config"
)

func TestNewDependencies_DefaultsOnNilConfig(t *testing.T) {
	deps := NewDependencies(nil, "")
	require.NotNil(t, deps.Config())
	assert.Equal(t, config.DefaultConfig(), deps.Config())
	assert.Empty(t, deps.ConfigPath())
}

func TestNewDependencies_KeepsProvidedConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Compare.Depth = 4

	deps := NewDependencies(cfg, "custom.toml")
	assert.Equal(t, 4, deps.Config().Compare.Depth)
	assert.Equal(t, "custom.toml", deps.ConfigPath())
	assert.NotNil(t, deps.BuildCompareService())
}
