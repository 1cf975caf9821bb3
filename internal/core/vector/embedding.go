package vector

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingProvider turns text into vectors
type EmbeddingProvider interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	GetDimensions() int
	GetProviderName() string
}

// OpenAIEmbeddingProvider implements EmbeddingProvider using OpenAI
type OpenAIEmbeddingProvider struct {
	client *openai.Client
	model  string
	dims   int
}

// NewOpenAIEmbeddingProvider creates an OpenAI embedding provider.
// Default model: text-embedding-3-small (1536 dimensions)
func NewOpenAIEmbeddingProvider(apiKey string, model string) (*OpenAIEmbeddingProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if model == "" {
		model = "text-embedding-3-small"
	}

	dims := 1536
	if model == "text-embedding-3-large" {
		dims = 3072
	}

	return &OpenAIEmbeddingProvider{
		client: openai.NewClient(apiKey),
		model:  model,
		dims:   dims,
	}, nil
}

func (p *OpenAIEmbeddingProvider) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return resp.Data[0].Embedding, nil
}

func (p *OpenAIEmbeddingProvider) GenerateBatchEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty")
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(p.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	embeddings := make([][]float32, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = data.Embedding
	}

	return embeddings, nil
}

func (p *OpenAIEmbeddingProvider) GetDimensions() int {
	return p.dims
}

func (p *OpenAIEmbeddingProvider) GetProviderName() string {
	return fmt.Sprintf("openai_%s", p.model)
}
