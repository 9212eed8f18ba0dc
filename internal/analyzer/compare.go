package analyzer

import (
	"context"

	"github.com/ludo-technologies/treesim/domain"
	"github.com/ludo-technologies/treesim/internal/tree"
)

// Options configure a single tree comparison
type Options struct {
	// Normalize rescales the raw cost into [0, 1)
	Normalize bool

	// Unordered ignores sibling order (upper-bound engine)
	Unordered bool

	// UseContext relabels every node with its ancestor path before
	// costing, so the encoder sees hierarchical context
	UseContext bool

	// Depth truncates both trees before comparing; 0 means no limit
	Depth int
}

// Compare scores two trees under the supplied encoder and embedding
// distance. Trees are truncated, then contextualized, then costed, then
// run through the ordered or unordered engine. The cost table is rebuilt
// on every call since truncation and context change the label set.
func Compare(ctx context.Context, a, b *tree.Tree, enc domain.Encoder, dist domain.EmbeddingDistance, opts Options) (float64, error) {
	if opts.Depth < 0 {
		return 0, domain.NewInvalidArgumentError("depth must be a positive integer")
	}

	ta, tb := a, b
	if opts.Depth > 0 {
		var err error
		if ta, err = ta.Truncate(opts.Depth); err != nil {
			return 0, err
		}
		if tb, err = tb.Truncate(opts.Depth); err != nil {
			return 0, err
		}
	}
	if opts.UseContext {
		ta = ta.Contextualize()
		tb = tb.Contextualize()
	}

	costs, err := BuildCostTable(ctx, ta, tb, enc, dist)
	if err != nil {
		return 0, err
	}

	var raw float64
	if opts.Unordered {
		raw = UnorderedTreeDistance(ta.Labels(), ta.Adjacency(), tb.Labels(), tb.Adjacency(), costs)
	} else {
		raw = TreeDistance(ta.Labels(), ta.Adjacency(), tb.Labels(), tb.Adjacency(), costs)
	}

	if !opts.Normalize {
		return raw, nil
	}
	return normalize(raw, costs.MaxUnary(), ta.Size()+tb.Size()), nil
}

// normalize maps a raw cost into [0, 1): zero for identical trees,
// approaching one as the trees become maximally dissimilar relative to
// their own deletion costs
func normalize(raw, maxUnary float64, totalSize int) float64 {
	denom := maxUnary*float64(totalSize) + raw
	if denom == 0 {
		// Both trees empty, or every label costs nothing to remove.
		return 0
	}
	return 2 * raw / denom
}

// AveragedCompare computes the arithmetic mean of the normalized distance
// at every truncation depth from 1 to the deeper tree's maximum depth,
// clipped to opts.Depth when set. opts.Normalize is implied.
func AveragedCompare(ctx context.Context, a, b *tree.Tree, enc domain.Encoder, dist domain.EmbeddingDistance, opts Options) (float64, error) {
	depths, err := AveragedDepths(a, b, opts.Depth)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, k := range depths {
		perDepth := opts
		perDepth.Normalize = true
		perDepth.Depth = k
		score, err := Compare(ctx, a, b, enc, dist, perDepth)
		if err != nil {
			return 0, err
		}
		total += score
	}
	return total / float64(len(depths)), nil
}

// AveragedDepths returns the truncation depths 1..maxDepth the averaged
// metric spans, where maxDepth is the deeper tree's maximum depth clipped
// to limit (0 = no clip). Fails when both trees are empty.
func AveragedDepths(a, b *tree.Tree, limit int) ([]int, error) {
	if limit < 0 {
		return nil, domain.NewInvalidArgumentError("depth must be a positive integer")
	}
	maxDepth := a.MaxDepth()
	if d := b.MaxDepth(); d > maxDepth {
		maxDepth = d
	}
	if limit > 0 && limit < maxDepth {
		maxDepth = limit
	}
	if maxDepth < 1 {
		return nil, domain.NewInvalidArgumentError("cannot average over empty trees")
	}

	depths := make([]int, maxDepth)
	for i := range depths {
		depths[i] = i + 1
	}
	return depths, nil
}
