package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treesim/app"
	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/service"
)

// CompareCommand handles the compare CLI command
type CompareCommand struct {
	// Metric configuration
	normalize  bool
	unordered  bool
	useContext bool
	depth      int
	averaged   bool

	// Encoder configuration
	encoder      string
	model        string
	dimensions   int
	distance     string
	apiKeyEnvVar string

	// File collection (directory mode)
	includePatterns []string
	excludePatterns []string

	// Output format flags (only one should be true)
	json bool
	csv  bool
	yaml bool

	showDepthScores bool
	noProgress      bool

	// Execution
	configFile string
	timeout    time.Duration
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{
		normalize:  true,
		unordered:  true,
		useContext: false,
		depth:      0,
		averaged:   false,
		encoder:    string(domain.EncoderLexical),
		dimensions: 256,
		distance:   string(domain.DistanceCosine),
		timeout:    5 * time.Minute,
	}
}

// CreateCobraCommand creates the cobra command for tree comparison
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <treeA> <treeB>",
		Short: "Compare two text trees",
		Long: `Compare two tree documents (or two directories of tree documents,
paired by relative path) and report their edit distance.

Each tree document is a nested JSON or YAML mapping where every entry
maps a label to the mapping of its children; an empty mapping denotes
a leaf.

Examples:
  # Normalized unordered distance between two outlines
  treesim compare generated.json reference.json

  # Ordered distance, truncated to the top three levels
  treesim compare generated.json reference.json --ordered --depth 3

  # Depth-averaged score with ancestor context, via the OpenAI encoder
  treesim compare generated.json reference.json --averaged --context --encoder openai

  # Compare whole directories, JSON output
  treesim compare runs/generated/ runs/reference/ --json`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	flags := cmd.Flags()
	flags.BoolVar(&c.normalize, "normalize", true, "Rescale distances into [0,1)")
	ordered := flags.Bool("ordered", false, "Respect sibling order (default is unordered)")
	flags.BoolVar(&c.useContext, "context", false, "Prefix each label with its ancestor path before encoding")
	flags.IntVar(&c.depth, "depth", 0, "Truncate trees to this depth before comparing (0 = no limit)")
	flags.BoolVar(&c.averaged, "averaged", false, "Average the normalized distance over all truncation depths")

	flags.StringVar(&c.encoder, "encoder", c.encoder, "Sentence encoder: openai or lexical")
	flags.StringVar(&c.model, "model", "", "Embeddings model name (openai encoder)")
	flags.IntVar(&c.dimensions, "dimensions", c.dimensions, "Hashed vector width (lexical encoder)")
	flags.StringVar(&c.distance, "distance", c.distance, "Embedding distance: cosine or euclidean")
	flags.StringVar(&c.apiKeyEnvVar, "api-key-env", "", "Environment variable holding the API key")

	flags.StringSliceVar(&c.includePatterns, "include", nil, "Include file patterns (directory mode)")
	flags.StringSliceVar(&c.excludePatterns, "exclude", nil, "Exclude file patterns (directory mode)")

	flags.BoolVar(&c.json, "json", false, "Output in JSON format")
	flags.BoolVar(&c.csv, "csv", false, "Output in CSV format")
	flags.BoolVar(&c.yaml, "yaml", false, "Output in YAML format")
	flags.BoolVar(&c.showDepthScores, "depth-scores", false, "Show the per-depth breakdown (averaged mode)")
	flags.BoolVar(&c.noProgress, "no-progress", false, "Disable progress reporting")

	flags.StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	flags.DurationVar(&c.timeout, "timeout", c.timeout, "Maximum time for the whole comparison")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if *ordered {
			c.unordered = false
		}
	}

	return cmd
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	req := domain.CompareRequest{
		PathA:           args[0],
		PathB:           args[1],
		IncludePatterns: c.includePatterns,
		ExcludePatterns: c.excludePatterns,
		Normalize:       c.normalize,
		Unordered:       c.unordered,
		UseContext:      c.useContext,
		Depth:           c.depth,
		Averaged:        c.averaged,
		Encoder:         domain.EncoderType(c.encoder),
		Model:           c.model,
		Dimensions:      c.dimensions,
		Distance:        domain.DistanceType(c.distance),
		APIKeyEnvVar:    c.apiKeyEnvVar,
		OutputFormat:    c.determineOutputFormat(),
		OutputWriter:    cmd.OutOrStdout(),
		ShowDepthScores: c.showDepthScores,
		Timeout:         c.timeout,
		ConfigPath:      c.configFile,
		NoProgress:      c.noProgress,
	}

	configLoader := service.NewCompareConfigLoader()
	progress := service.CreateProgressReporter(req.NoProgress)

	useCase, err := app.NewCompareUseCaseBuilder().
		WithService(service.NewCompareService(progress)).
		WithFormatter(service.NewCompareFormatter(req.ShowDepthScores)).
		WithConfigLoader(configLoader).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build compare use case: %w", err)
	}

	// Config file values act as defaults; explicitly passed flags win.
	effective, err := useCase.LoadRequest(req)
	if err != nil {
		return err
	}
	c.applyChangedFlags(cmd, &effective, &req)

	if err := useCase.Execute(cmd.Context(), effective); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return nil
}

// applyChangedFlags re-applies boolean flags the user passed explicitly,
// since a loaded config cannot be told apart from an untouched default
// otherwise
func (c *CompareCommand) applyChangedFlags(cmd *cobra.Command, effective, req *domain.CompareRequest) {
	if cmd.Flags().Changed("normalize") {
		effective.Normalize = req.Normalize
	}
	if cmd.Flags().Changed("ordered") {
		effective.Unordered = req.Unordered
	}
	if cmd.Flags().Changed("context") {
		effective.UseContext = req.UseContext
	}
	if cmd.Flags().Changed("averaged") {
		effective.Averaged = req.Averaged
	}
	if cmd.Flags().Changed("depth-scores") {
		effective.ShowDepthScores = req.ShowDepthScores
	}
}

func (c *CompareCommand) determineOutputFormat() domain.OutputFormat {
	switch {
	case c.json:
		return domain.OutputFormatJSON
	case c.csv:
		return domain.OutputFormatCSV
	case c.yaml:
		return domain.OutputFormatYAML
	default:
		return domain.OutputFormatText
	}
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	compareCommand := NewCompareCommand()
	return compareCommand.CreateCobraCommand()
}
