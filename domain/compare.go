package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the output format for comparison results
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// EncoderType selects the sentence encoder implementation
type EncoderType string

const (
	// EncoderOpenAI uses the OpenAI embeddings API
	EncoderOpenAI EncoderType = "openai"
	// EncoderLexical uses a deterministic hashed bag-of-tokens encoder
	// that needs no network access
	EncoderLexical EncoderType = "lexical"
)

// DistanceType selects the embedding-space distance function
type DistanceType string

const (
	DistanceCosine    DistanceType = "cosine"
	DistanceEuclidean DistanceType = "euclidean"
)

// Encoder maps sentences to embedding vectors. Implementations must return
// one embedding per input string, in input order, and must accept the empty
// string (its embedding is used to price node deletions and insertions).
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbeddingDistance measures the distance between two embeddings.
// It must return a nonnegative value; it is not assumed to be symmetric
// or to satisfy the triangle inequality.
type EmbeddingDistance func(a, b []float64) float64

// CompareRequest represents a tree comparison request
type CompareRequest struct {
	// Input paths: two tree files, or two directories whose tree files
	// are paired by relative name
	PathA string `json:"path_a"`
	PathB string `json:"path_b"`

	// File collection (directory mode)
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Metric configuration
	Normalize  bool `json:"normalize"`
	Unordered  bool `json:"unordered"`
	UseContext bool `json:"use_context"`
	// Depth limits the comparison to nodes at or above this depth.
	// 0 means no limit; values below 1 are rejected.
	Depth int `json:"depth"`
	// Averaged computes the depth-averaged normalized distance instead
	// of a single comparison
	Averaged bool `json:"averaged"`

	// Encoder configuration
	Encoder      EncoderType  `json:"encoder"`
	Model        string       `json:"model"`
	Dimensions   int          `json:"dimensions"`
	Distance     DistanceType `json:"distance"`
	APIKeyEnvVar string       `json:"api_key_env_var"`

	// Output configuration
	OutputFormat    OutputFormat `json:"output_format"`
	OutputWriter    io.Writer    `json:"-"`
	ShowDepthScores bool         `json:"show_depth_scores"`

	// Execution
	Timeout    time.Duration `json:"timeout"`
	ConfigPath string        `json:"config_path"`
	NoProgress bool          `json:"no_progress"`
}

// DefaultCompareRequest creates a request with sensible defaults
func DefaultCompareRequest() CompareRequest {
	return CompareRequest{
		Normalize:    true,
		Unordered:    true,
		UseContext:   false,
		Averaged:     false,
		Encoder:      EncoderLexical,
		Dimensions:   256,
		Distance:     DistanceCosine,
		OutputFormat: OutputFormatText,
		Timeout:      5 * time.Minute,
	}
}

// Validate validates a compare request
func (req *CompareRequest) Validate() error {
	if req.PathA == "" || req.PathB == "" {
		return NewInvalidArgumentError("two input paths are required")
	}
	if req.Depth < 0 {
		return NewInvalidArgumentError("depth must be a positive integer")
	}
	switch req.OutputFormat {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
	default:
		return NewUnsupportedFormatError(string(req.OutputFormat))
	}
	switch req.Encoder {
	case EncoderOpenAI, EncoderLexical:
	default:
		return NewInvalidArgumentError("unknown encoder: " + string(req.Encoder))
	}
	switch req.Distance {
	case DistanceCosine, DistanceEuclidean:
	default:
		return NewInvalidArgumentError("unknown distance: " + string(req.Distance))
	}
	return nil
}

// HasValidOutputWriter checks if the request has a valid output writer
func (req *CompareRequest) HasValidOutputWriter() bool {
	return req.OutputWriter != nil
}

// DepthScore is the normalized distance at a single truncation depth
type DepthScore struct {
	Depth    int     `json:"depth" yaml:"depth" csv:"depth"`
	Distance float64 `json:"distance" yaml:"distance" csv:"distance"`
}

// CompareResult holds the outcome of comparing one pair of trees
type CompareResult struct {
	FileA    string  `json:"file_a" yaml:"file_a" csv:"file_a"`
	FileB    string  `json:"file_b" yaml:"file_b" csv:"file_b"`
	Distance float64 `json:"distance" yaml:"distance" csv:"distance"`
	SizeA    int     `json:"size_a" yaml:"size_a" csv:"size_a"`
	SizeB    int     `json:"size_b" yaml:"size_b" csv:"size_b"`
	MaxDepth int     `json:"max_depth" yaml:"max_depth" csv:"max_depth"`
	// DepthScores is populated in averaged mode (one entry per depth)
	DepthScores []DepthScore `json:"depth_scores,omitempty" yaml:"depth_scores,omitempty"`
}

// CompareSummary aggregates results across all compared pairs
type CompareSummary struct {
	TotalPairs      int     `json:"total_pairs" yaml:"total_pairs"`
	AverageDistance float64 `json:"average_distance" yaml:"average_distance"`
	MinDistance     float64 `json:"min_distance" yaml:"min_distance"`
	MaxDistance     float64 `json:"max_distance" yaml:"max_distance"`
}

// CompareResponse represents the comparison results
type CompareResponse struct {
	Results  []CompareResult `json:"results" yaml:"results"`
	Summary  CompareSummary  `json:"summary" yaml:"summary"`
	Warnings []string        `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors   []string        `json:"errors,omitempty" yaml:"errors,omitempty"`

	// Metadata
	Unordered   bool   `json:"unordered" yaml:"unordered"`
	Averaged    bool   `json:"averaged" yaml:"averaged"`
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Duration    int64  `json:"duration_ms" yaml:"duration_ms"`
}

// CompareService defines the interface for tree comparison
type CompareService interface {
	// Compare performs tree comparison based on the request
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)
}

// TreeReader defines the interface for reading tree files
type TreeReader interface {
	// CollectTreeFiles finds tree files (JSON/YAML) under the given paths
	CollectTreeFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a tree file
	ReadFile(path string) ([]byte, error)

	// IsValidTreeFile checks whether the path looks like a tree document
	IsValidTreeFile(path string) bool
}

// CompareOutputFormatter formats comparison results
type CompareOutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *CompareResponse, format OutputFormat) (string, error)

	// Write writes the formatted response to the writer
	Write(response *CompareResponse, format OutputFormat, writer io.Writer) error
}

// CompareConfigurationLoader loads comparison configuration from files
type CompareConfigurationLoader interface {
	// LoadConfig loads configuration from the given path, or discovers
	// a config file when path is empty
	LoadConfig(path string) (*CompareRequest, error)

	// MergeConfig merges a loaded configuration with explicit request
	// values (the request takes precedence)
	MergeConfig(base *CompareRequest, req *CompareRequest) *CompareRequest
}

// ProgressReporter reports comparison progress
type ProgressReporter interface {
	StartProgress(totalPairs int)
	UpdateProgress(currentPair string, processed, total int)
	FinishProgress()
}
