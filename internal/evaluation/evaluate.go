package evaluation

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/prompts"
	"github.com/jonathan/style-transfer/internal/types"
)

// Dimension keys, in the fixed order results are reported.
const (
	KeyStyleFidelity           = "style_fidelity"
	KeyContentPreservation     = "content_preservation"
	KeyContentQuality          = "content_quality"
	KeyPlatformAppropriateness = "platform_appropriateness"
)

// Result is one dimension's score for one response.
type Result struct {
	Key     string  `json:"key"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}

// Evaluator runs the four-dimension evaluation pipeline.
type Evaluator struct {
	judge    Judge
	embedder EmbeddingScorer
}

// NewEvaluator builds an evaluator backed by the given LLM client for both
// judge and embedding scoring.
func NewEvaluator(client llm.Client) *Evaluator {
	return &Evaluator{
		judge:    &geminiJudge{client: client},
		embedder: &geminiEmbedder{client: client},
	}
}

// NewEvaluatorWithScorers builds an evaluator from explicit scorers.
// Used by tests and by callers with non-default scoring backends.
func NewEvaluatorWithScorers(judge Judge, embedder EmbeddingScorer) *Evaluator {
	return &Evaluator{judge: judge, embedder: embedder}
}

// Evaluate scores a single response across all four dimensions. Dimensions
// run concurrently; the returned order is fixed regardless of timing. A
// failing dimension degrades to a score-0 record rather than erroring, so
// one broken scorer never hides the remaining scores.
func (e *Evaluator) Evaluate(ctx context.Context, request *types.StyleTransferRequest, response *types.StyleTransferResponse, model string) []Result {
	results := make([]Result, 4)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results[0] = safeScore(KeyStyleFidelity, func() (Result, error) {
			return e.styleFidelity(gCtx, request, response, model)
		})
		return nil
	})
	g.Go(func() error {
		results[1] = safeScore(KeyContentPreservation, func() (Result, error) {
			return e.contentPreservation(gCtx, request, response)
		})
		return nil
	})
	g.Go(func() error {
		results[2] = safeScore(KeyContentQuality, func() (Result, error) {
			return e.contentQuality(gCtx, request, response, model)
		})
		return nil
	})
	g.Go(func() error {
		results[3] = safeScore(KeyPlatformAppropriateness, func() (Result, error) {
			return e.platformAppropriateness(gCtx, request, response, model)
		})
		return nil
	})
	_ = g.Wait() // dimension goroutines never return errors

	return results
}

// EvaluateBatch scores each response independently, preserving input order.
func (e *Evaluator) EvaluateBatch(ctx context.Context, request *types.StyleTransferRequest, responses []types.StyleTransferResponse, model string) [][]Result {
	results := make([][]Result, len(responses))
	for i := range responses {
		results[i] = e.Evaluate(ctx, request, &responses[i], model)
	}
	return results
}

// safeScore converts any scoring failure into a score-0 record with an
// explanatory comment.
func safeScore(key string, fn func() (Result, error)) Result {
	result, err := fn()
	if err != nil {
		return Result{
			Key:     key,
			Score:   0,
			Comment: fmt.Sprintf("evaluation failed: %v", err),
		}
	}
	return result
}

// formatResult normalizes a scored dimension into a Result record.
func formatResult(key string, score float64, comment string) Result {
	if comment == "" {
		comment = "No comment provided"
	}
	return Result{Key: key, Score: score, Comment: comment}
}

// styleFidelity compares the first reference style against original and
// generated content via an LLM judge (1-5 scale).
func (e *Evaluator) styleFidelity(ctx context.Context, request *types.StyleTransferRequest, response *types.StyleTransferResponse, model string) (Result, error) {
	generated, original, err := textContents(request, response)
	if err != nil {
		return Result{}, err
	}

	if len(request.ReferenceStyle) == 0 {
		return Result{}, fmt.Errorf("request has no reference styles")
	}
	styleDump, err := json.Marshal(request.ReferenceStyle[0])
	if err != nil {
		return Result{}, fmt.Errorf("failed to serialize reference style: %w", err)
	}

	template := prompts.MustGet("evaluation.json", "style-fidelity")
	prompt := prompts.Format(template, map[string]string{
		"ReferenceStyle":  string(styleDump),
		"OriginalContent": original,
		"Outputs":         generated,
	})

	score, comment, err := e.judge.Score(ctx, prompt, model)
	if err != nil {
		return Result{}, err
	}
	return formatResult(KeyStyleFidelity, score, comment), nil
}

// contentPreservation compares generated and original text by embedding
// similarity (0-1 scale).
func (e *Evaluator) contentPreservation(ctx context.Context, request *types.StyleTransferRequest, response *types.StyleTransferResponse) (Result, error) {
	generated, original, err := textContents(request, response)
	if err != nil {
		return Result{}, err
	}

	score, err := e.embedder.Similarity(ctx, generated, original)
	if err != nil {
		return Result{}, err
	}
	return formatResult(KeyContentPreservation, score, "Embedding similarity between generated and original content"), nil
}

// contentQuality rates general writing quality independent of style
// matching (1-5 scale).
func (e *Evaluator) contentQuality(ctx context.Context, request *types.StyleTransferRequest, response *types.StyleTransferResponse, model string) (Result, error) {
	generated, _, err := textContents(request, response)
	if err != nil {
		return Result{}, err
	}

	template := prompts.MustGet("evaluation.json", "content-quality")
	prompt := prompts.Format(template, map[string]string{
		"Outputs": generated,
	})

	score, comment, err := e.judge.Score(ctx, prompt, model)
	if err != nil {
		return Result{}, err
	}
	return formatResult(KeyContentQuality, score, comment), nil
}

// platformAppropriateness rates conformance to the target output type's
// conventions (1-5 scale).
func (e *Evaluator) platformAppropriateness(ctx context.Context, request *types.StyleTransferRequest, response *types.StyleTransferResponse, model string) (Result, error) {
	generated, _, err := textContents(request, response)
	if err != nil {
		return Result{}, err
	}

	outputType := "unknown"
	if response.OutputSchema != nil {
		outputType = string(response.OutputSchema.OutputType)
	}

	template := prompts.MustGet("evaluation.json", "platform-appropriateness")
	prompt := prompts.Format(template, map[string]string{
		"OutputType": outputType,
		"Outputs":    generated,
	})

	score, comment, err := e.judge.Score(ctx, prompt, model)
	if err != nil {
		return Result{}, err
	}
	return formatResult(KeyPlatformAppropriateness, score, comment), nil
}
