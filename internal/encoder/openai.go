package encoder

import (
	"context"
	"fmt"
	"sort"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the embeddings model used when none is configured
const DefaultOpenAIModel = "text-embedding-3-small"

// OpenAI encodes sentences through the OpenAI embeddings API. All labels
// for one comparison arrive in a single batched request. The underlying
// client is safe for concurrent use.
type OpenAI struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAI creates an OpenAI-backed encoder
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  openai.EmbeddingModel(model),
	}
}

// Encode implements domain.Encoder
func (e *OpenAI) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	// The API rejects empty input strings, but the empty string's
	// embedding is needed to price deletions and insertions; send a
	// single space in its place.
	input := make([]string, len(texts))
	for i, t := range texts {
		if t == "" {
			t = " "
		}
		input[i] = t
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: input,
		Model: e.model,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(input) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(resp.Data), len(input))
	}

	// Map responses back onto input order by Index.
	data := resp.Data
	sort.Slice(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	out := make([][]float64, len(input))
	for i, d := range data {
		vec := make([]float64, len(d.Embedding))
		for k, v := range d.Embedding {
			vec[k] = float64(v)
		}
		out[i] = vec
	}
	return out, nil
}
