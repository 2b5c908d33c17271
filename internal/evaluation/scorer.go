// Package evaluation scores generated responses against their originating
// request across four independent quality dimensions.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/generative-ai-go/genai"

	"github.com/jonathan/style-transfer/internal/llm"
)

// Judge scores content against a rubric prompt, returning a numeric score
// and an explanatory comment.
type Judge interface {
	Score(ctx context.Context, prompt, model string) (float64, string, error)
}

// EmbeddingScorer computes a similarity score between two texts.
type EmbeddingScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// geminiJudge implements Judge on top of the LLM client with a structured
// score/comment response schema.
type geminiJudge struct {
	client llm.Client
}

// judgeResponseSchema constrains the judge to a numeric score and comment.
func judgeResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":   {Type: genai.TypeNumber, Description: "Numeric score per the rubric"},
			"comment": {Type: genai.TypeString, Description: "Short justification for the score"},
		},
		Required: []string{"score", "comment"},
	}
}

// Score runs the rubric prompt through the LLM. The model parameter selects
// a configured tier ("lite", "standard", "advanced"); concrete model names
// are a configuration concern at the client boundary.
func (j *geminiJudge) Score(ctx context.Context, prompt, model string) (float64, string, error) {
	tier := llm.TierStandard
	switch llm.ModelTier(model) {
	case llm.TierLite, llm.TierStandard, llm.TierAdvanced:
		tier = llm.ModelTier(model)
	}

	// Score/comment responses are tiny; no output budget needed.
	raw, err := j.client.GenerateStructured(ctx, "", prompt, judgeResponseSchema(), 0, tier)
	if err != nil {
		return 0, "", fmt.Errorf("judge call failed: %w", err)
	}

	var parsed struct {
		Score   float64 `json:"score"`
		Comment string  `json:"comment"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return 0, "", fmt.Errorf("failed to parse judge response: %w", err)
	}
	return parsed.Score, parsed.Comment, nil
}

// geminiEmbedder implements EmbeddingScorer via cosine similarity of text
// embeddings.
type geminiEmbedder struct {
	client llm.Client
}

func (e *geminiEmbedder) Similarity(ctx context.Context, a, b string) (float64, error) {
	vecA, err := e.client.EmbedText(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("failed to embed generated text: %w", err)
	}
	vecB, err := e.client.EmbedText(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("failed to embed original text: %w", err)
	}
	return cosineSimilarity(vecA, vecB)
}

// cosineSimilarity returns the cosine of the angle between two vectors.
func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("empty embedding vectors")
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, fmt.Errorf("zero-magnitude embedding vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
