package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/treesim/domain"
)

// CompareFormatterImpl implements the domain.CompareOutputFormatter interface
type CompareFormatterImpl struct {
	// ShowDepthScores includes the per-depth breakdown in text output
	ShowDepthScores bool
}

// NewCompareFormatter creates a new output formatter service
func NewCompareFormatter(showDepthScores bool) *CompareFormatterImpl {
	return &CompareFormatterImpl{ShowDepthScores: showDepthScores}
}

// Format formats the response according to the specified format
func (f *CompareFormatterImpl) Format(response *domain.CompareResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response)
	case domain.OutputFormatJSON:
		return f.formatJSON(response)
	case domain.OutputFormatYAML:
		return f.formatYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *CompareFormatterImpl) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	if _, err := writer.Write([]byte(output)); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (f *CompareFormatterImpl) formatText(response *domain.CompareResponse) (string, error) {
	var b strings.Builder

	b.WriteString("Tree Comparison Report\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	mode := "ordered"
	if response.Unordered {
		mode = "unordered"
	}
	metric := "distance"
	if response.Averaged {
		metric = "depth-averaged distance"
	}
	b.WriteString(fmt.Sprintf("Mode: %s %s\n", mode, metric))
	b.WriteString(fmt.Sprintf("Pairs compared: %d\n", response.Summary.TotalPairs))
	if response.Summary.TotalPairs > 0 {
		b.WriteString(fmt.Sprintf("Average distance: %.4f\n", response.Summary.AverageDistance))
		if response.Summary.TotalPairs > 1 {
			b.WriteString(fmt.Sprintf("Min / max: %.4f / %.4f\n", response.Summary.MinDistance, response.Summary.MaxDistance))
		}
	}
	b.WriteString("\n")

	for _, r := range response.Results {
		b.WriteString(fmt.Sprintf("%s <-> %s\n", r.FileA, r.FileB))
		b.WriteString(fmt.Sprintf("  distance: %.4f  (sizes %d/%d, max depth %d)\n", r.Distance, r.SizeA, r.SizeB, r.MaxDepth))
		if f.ShowDepthScores && len(r.DepthScores) > 0 {
			for _, ds := range r.DepthScores {
				b.WriteString(fmt.Sprintf("    @%d: %.4f\n", ds.Depth, ds.Distance))
			}
		}
	}

	if len(response.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range response.Warnings {
			b.WriteString("  " + w + "\n")
		}
	}
	if len(response.Errors) > 0 {
		b.WriteString("\nErrors:\n")
		for _, e := range response.Errors {
			b.WriteString("  " + e + "\n")
		}
	}

	return b.String(), nil
}

func (f *CompareFormatterImpl) formatJSON(response *domain.CompareResponse) (string, error) {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data) + "\n", nil
}

func (f *CompareFormatterImpl) formatYAML(response *domain.CompareResponse) (string, error) {
	data, err := yaml.Marshal(response)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

func (f *CompareFormatterImpl) formatCSV(response *domain.CompareResponse) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"file_a", "file_b", "distance", "size_a", "size_b", "max_depth"}); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}
	for _, r := range response.Results {
		record := []string{
			r.FileA,
			r.FileB,
			strconv.FormatFloat(r.Distance, 'f', 6, 64),
			strconv.Itoa(r.SizeA),
			strconv.Itoa(r.SizeB),
			strconv.Itoa(r.MaxDepth),
		}
		if err := w.Write(record); err != nil {
			return "", domain.NewOutputError("failed to write CSV record", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", domain.NewOutputError("failed to flush CSV", err)
	}
	return b.String(), nil
}
