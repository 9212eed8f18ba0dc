package encoder

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexical_Encode(t *testing.T) {
	enc := NewLexical(64)

	texts := []string{"the quick brown fox", "the quick brown fox", "slow green turtle", ""}
	embs, err := enc.Encode(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, embs, len(texts))

	for i, e := range embs {
		assert.Len(t, e, 64, "embedding %d width", i)
	}

	assert.InDelta(t, 0.0, Cosine(embs[0], embs[1]), 1e-9, "identical sentences must coincide")
	assert.Greater(t, Cosine(embs[0], embs[2]), 0.0, "disjoint sentences must differ")

	for _, v := range embs[3] {
		assert.Zero(t, v, "empty string must encode to the zero vector")
	}
	assert.InDelta(t, 1.0, Cosine(embs[0], embs[3]), 1e-9)
}

func TestLexical_Normalized(t *testing.T) {
	enc := NewLexical(128)

	embs, err := enc.Encode(context.Background(), []string{"alpha beta gamma delta"})
	require.NoError(t, err)

	var norm float64
	for _, v := range embs[0] {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestLexical_CaseAndOrderInsensitive(t *testing.T) {
	enc := NewLexical(0) // falls back to the default width

	embs, err := enc.Encode(context.Background(), []string{"Alpha Beta", "beta alpha"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, Cosine(embs[0], embs[1]), 1e-9)
	assert.Len(t, embs[0], DefaultLexicalDimensions)
}

func TestLexical_EmptyBatch(t *testing.T) {
	enc := NewLexical(16)
	embs, err := enc.Encode(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, embs)
}
