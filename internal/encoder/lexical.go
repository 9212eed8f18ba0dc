package encoder

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

// Lexical is a deterministic, network-free encoder: each sentence becomes
// an L2-normalized hashed bag-of-tokens vector. It is no substitute for a
// sentence embedding model, but it gives stable, meaningful distances for
// tests, fixtures, and air-gapped runs. The empty string encodes to the
// zero vector, so unary costs under Cosine come out as 1 for any nonempty
// label. Stateless, safe for concurrent use.
type Lexical struct {
	dims int
}

// DefaultLexicalDimensions is the hashed vector width used when none is
// configured
const DefaultLexicalDimensions = 256

// NewLexical creates a lexical encoder with the given vector width
func NewLexical(dims int) *Lexical {
	if dims <= 0 {
		dims = DefaultLexicalDimensions
	}
	return &Lexical{dims: dims}
}

// Encode implements domain.Encoder
func (e *Lexical) Encode(_ context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *Lexical) embed(text string) []float64 {
	vec := make([]float64, e.dims)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dims]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
