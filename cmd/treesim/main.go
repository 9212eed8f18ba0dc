package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/treesim/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "treesim",
	Short: "A semantic tree edit distance metric for hierarchical text",
	Long: `treesim scores the structural and semantic distance between two
labeled trees of short text fragments (outlines, mind maps, tables of
contents) using a cost-aware tree edit distance driven by sentence
embeddings.

Features:
  • Ordered and unordered edit distance variants
  • Depth truncation (metric@k) and depth-averaged scoring
  • Context-augmented relabeling for context-free encoders
  • Pluggable sentence encoders (OpenAI API or offline lexical)`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInitCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
