package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/treesim/domain"
)

func sampleResponse() *domain.CompareResponse {
	return &domain.CompareResponse{
		Results: []domain.CompareResult{
			{
				FileA:    "a.json",
				FileB:    "b.json",
				Distance: 0.25,
				SizeA:    4,
				SizeB:    5,
				MaxDepth: 3,
				DepthScores: []domain.DepthScore{
					{Depth: 1, Distance: 0},
					{Depth: 2, Distance: 0.5},
				},
			},
			{
				FileA:    "c.json",
				FileB:    "d.json",
				Distance: 0.75,
				SizeA:    2,
				SizeB:    2,
				MaxDepth: 1,
			},
		},
		Summary: domain.CompareSummary{
			TotalPairs:      2,
			AverageDistance: 0.5,
			MinDistance:     0.25,
			MaxDistance:     0.75,
		},
		Warnings:    []string{"unmatched file: e.json"},
		Unordered:   true,
		Averaged:    true,
		GeneratedAt: "2026-01-01T00:00:00Z",
	}
}

func TestCompareFormatter_Text(t *testing.T) {
	f := NewCompareFormatter(false)

	out, err := f.Format(sampleResponse(), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Tree Comparison Report")
	assert.Contains(t, out, "Mode: unordered depth-averaged distance")
	assert.Contains(t, out, "Pairs compared: 2")
	assert.Contains(t, out, "a.json <-> b.json")
	assert.Contains(t, out, "distance: 0.2500")
	assert.Contains(t, out, "sizes 4/5, max depth 3")
	assert.Contains(t, out, "unmatched file: e.json")
	assert.NotContains(t, out, "@1:", "depth breakdown is opt-in")
}

func TestCompareFormatter_TextWithDepthScores(t *testing.T) {
	f := NewCompareFormatter(true)

	out, err := f.Format(sampleResponse(), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "@1: 0.0000")
	assert.Contains(t, out, "@2: 0.5000")
}

func TestCompareFormatter_JSON(t *testing.T) {
	f := NewCompareFormatter(false)

	out, err := f.Format(sampleResponse(), domain.OutputFormatJSON)
	require.NoError(t, err)

	var decoded domain.CompareResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *sampleResponse(), decoded)
}

func TestCompareFormatter_YAML(t *testing.T) {
	f := NewCompareFormatter(false)

	out, err := f.Format(sampleResponse(), domain.OutputFormatYAML)
	require.NoError(t, err)

	var decoded domain.CompareResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleResponse().Results, decoded.Results)
	assert.Equal(t, sampleResponse().Summary, decoded.Summary)
}

func TestCompareFormatter_CSV(t *testing.T) {
	f := NewCompareFormatter(false)

	out, err := f.Format(sampleResponse(), domain.OutputFormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "file_a,file_b,distance,size_a,size_b,max_depth", lines[0])
	assert.Equal(t, "a.json,b.json,0.250000,4,5,3", lines[1])
	assert.Equal(t, "c.json,d.json,0.750000,2,2,1", lines[2])
}

func TestCompareFormatter_UnsupportedFormat(t *testing.T) {
	f := NewCompareFormatter(false)

	_, err := f.Format(sampleResponse(), domain.OutputFormat("xml"))
	require.Error(t, err)

	var domErr domain.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, domErr.Code)
}

func TestCompareFormatter_Write(t *testing.T) {
	f := NewCompareFormatter(false)

	var b strings.Builder
	require.NoError(t, f.Write(sampleResponse(), domain.OutputFormatText, &b))
	assert.Contains(t, b.String(), "Tree Comparison Report")
}
