package analyzer

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/internal/tree"
)

// Costs prices the edit operations for a pair of trees. Substitution is
// keyed by the two labels involved; deletion and insertion of a node both
// cost the unary price of its label.
type Costs interface {
	// Substitute returns the cost of relabeling labelA to labelB
	Substitute(labelA, labelB string) float64

	// Unary returns the cost of deleting or inserting a node with the
	// given label
	Unary(label string) float64
}

// CostTable holds precomputed edit costs for one comparison. Costs are
// memoized per distinct label text within a single comparison call: two
// nodes carrying the same label share one entry, trading exactness for
// fewer encoder calls.
type CostTable struct {
	pair  map[string]map[string]float64
	unary map[string]float64
}

// BuildCostTable encodes the labels of both trees and derives the pairwise
// substitution costs and the per-label deletion/insertion costs (distance
// to the empty-string embedding). The encoder is invoked at most twice:
// once for treeA's labels plus the empty string, once for treeB's labels.
// Encoder failures propagate unmodified.
func BuildCostTable(ctx context.Context, a, b *tree.Tree, enc domain.Encoder, dist domain.EmbeddingDistance) (*CostTable, error) {
	labelsA := a.Labels()
	labelsB := b.Labels()

	batchA := make([]string, 0, len(labelsA)+1)
	batchA = append(batchA, labelsA...)
	batchA = append(batchA, "")

	embA, err := enc.Encode(ctx, batchA)
	if err != nil {
		return nil, err
	}
	if len(embA) != len(batchA) {
		return nil, domain.NewEncoderError(fmt.Sprintf("encoder returned %d embeddings for %d inputs", len(embA), len(batchA)), nil)
	}
	empty := embA[len(embA)-1]
	embA = embA[:len(embA)-1]

	var embB [][]float64
	if len(labelsB) > 0 {
		embB, err = enc.Encode(ctx, labelsB)
		if err != nil {
			return nil, err
		}
		if len(embB) != len(labelsB) {
			return nil, domain.NewEncoderError(fmt.Sprintf("encoder returned %d embeddings for %d inputs", len(embB), len(labelsB)), nil)
		}
	}

	ct := &CostTable{
		pair:  make(map[string]map[string]float64, len(labelsA)),
		unary: make(map[string]float64, len(labelsA)+len(labelsB)),
	}

	for i, la := range labelsA {
		row, ok := ct.pair[la]
		if !ok {
			row = make(map[string]float64, len(labelsB))
			ct.pair[la] = row
		}
		for j, lb := range labelsB {
			row[lb] = dist(embA[i], embB[j])
		}
		ct.unary[la] = dist(embA[i], empty)
	}
	for j, lb := range labelsB {
		ct.unary[lb] = dist(embB[j], empty)
	}

	return ct, nil
}

// Substitute implements Costs. A missing entry means the table and the
// engine disagree on the node set; that is a bug, not an input error, so
// it panics instead of returning a value.
func (ct *CostTable) Substitute(labelA, labelB string) float64 {
	row, ok := ct.pair[labelA]
	if !ok {
		panic(fmt.Sprintf("cost table has no substitution row for label %q", labelA))
	}
	c, ok := row[labelB]
	if !ok {
		panic(fmt.Sprintf("cost table has no substitution entry for labels %q, %q", labelA, labelB))
	}
	return c
}

// Unary implements Costs
func (ct *CostTable) Unary(label string) float64 {
	c, ok := ct.unary[label]
	if !ok {
		panic(fmt.Sprintf("cost table has no unary entry for label %q", label))
	}
	return c
}

// MaxUnary returns the largest unary cost in the table, or 0 when empty.
// Used to scale normalized distances.
func (ct *CostTable) MaxUnary() float64 {
	maxCost := 0.0
	for _, c := range ct.unary {
		if c > maxCost {
			maxCost = c
		}
	}
	return maxCost
}
