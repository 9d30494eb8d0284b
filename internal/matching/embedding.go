package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/job-portal/internal/logger"
)

const DefaultEmbeddingModel = "text-embedding-004"

// Embedder is the subset of embeddings.Embedder the strategy needs.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingStrategy embeds the resume and every job text, then compares vectors.
type EmbeddingStrategy struct {
	embedder Embedder
}

func NewEmbeddingStrategy(e Embedder) *EmbeddingStrategy {
	return &EmbeddingStrategy{embedder: e}
}

func (s *EmbeddingStrategy) Name() string { return "embedding" }

func (s *EmbeddingStrategy) Score(ctx context.Context, resumeText string, jobTexts []string) ([]float64, error) {
	if len(jobTexts) == 0 {
		return nil, nil
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, append([]string{resumeText}, jobTexts...))
	if err != nil {
		return nil, fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(jobTexts)+1 {
		return nil, fmt.Errorf("embed documents: got %d vectors for %d texts", len(vectors), len(jobTexts)+1)
	}

	resumeVec := toFloat64(vectors[0])
	scores := make([]float64, len(jobTexts))
	for i := range jobTexts {
		scores[i] = cosine(resumeVec, toFloat64(vectors[i+1]))
	}
	return scores, nil
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// NewGoogleEmbedder builds a Gemini embeddings client.
func NewGoogleEmbedder(ctx context.Context, apiKey, model string) (Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = DefaultEmbeddingModel
	}
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	e, err := embeddings.NewEmbedder(client)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return e, nil
}

// SelectStrategy probes the embedding backend once and returns it when it
// answers. Any failure selects the term-frequency strategy.
func SelectStrategy(ctx context.Context, newEmbedder func(context.Context) (Embedder, error)) Strategy {
	log := logger.Ctx(ctx)
	e, err := newEmbedder(ctx)
	if err != nil {
		log.Info().Err(err).Msg("embedding backend unavailable, using term-frequency matching")
		return NewTermFrequencyStrategy()
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := e.EmbedDocuments(probeCtx, []string{"probe"}); err != nil {
		log.Warn().Err(err).Msg("embedding probe failed, using term-frequency matching")
		return NewTermFrequencyStrategy()
	}
	log.Info().Msg("using embedding matching")
	return NewEmbeddingStrategy(e)
}
