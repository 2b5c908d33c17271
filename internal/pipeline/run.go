// Package pipeline provides the high-level orchestration for the style
// transfer process.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/style-transfer/internal/db"
	"github.com/jonathan/style-transfer/internal/enrichment"
	"github.com/jonathan/style-transfer/internal/evaluation"
	"github.com/jonathan/style-transfer/internal/fetch"
	"github.com/jonathan/style-transfer/internal/generation"
	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/observability"
	"github.com/jonathan/style-transfer/internal/schemas"
	"github.com/jonathan/style-transfer/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	RequestPath string
	OutputPath  string
	APIKey      string
	Model       string
	Evaluate    bool
	UseBrowser  bool
	Verbose     bool
	DatabaseURL string
	OnProgress  ProgressCallback
}

// RunResult holds the outputs of a pipeline run
type RunResult struct {
	Request   *types.StyleTransferRequest   `json:"request"`
	Responses []types.StyleTransferResponse `json:"responses"`
	Scores    [][]evaluation.Result         `json:"scores,omitempty"`
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}

// LoadRequest reads a request file, validates it against the request schema,
// and decodes it.
func LoadRequest(path string) (*types.StyleTransferRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	if err := schemas.ValidateRequestJSON(data); err != nil {
		return nil, fmt.Errorf("request file %s is invalid: %w", path, err)
	}

	var request types.StyleTransferRequest
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return &request, nil
}

// RunPipeline orchestrates the full style transfer pipeline
func RunPipeline(ctx context.Context, opts RunOptions) (*RunResult, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// Step 1: Load and validate the request
	fmt.Printf("Step 1/4: Loading request from %s...\n", opts.RequestPath)
	request, err := LoadRequest(opts.RequestPath)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		printer.PrintRequest(request)
	}
	emitProgress(&opts, db.StepRequest,
		fmt.Sprintf("Loaded request with %d reference styles", len(request.ReferenceStyle)), nil)

	if database != nil {
		styleName := ""
		if len(request.ReferenceStyle) > 0 {
			styleName = request.ReferenceStyle[0].Name
		}
		runID, err = database.CreateRun(ctx, styleName, request.Focus)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else {
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
			_ = database.SaveArtifact(ctx, runID, db.StepRequest, request)
		}
	}

	// Step 2: Hydrate documents that carry only URLs
	fmt.Printf("Step 2/4: Hydrating documents...\n")
	hydrator := fetch.NewHydrator(nil, fetch.HydrateOptions{
		UseBrowser: opts.UseBrowser,
		Verbose:    opts.Verbose,
	})
	hydrator.HydrateRequest(ctx, request)

	// Step 3: Enrich styles and generate outputs
	fmt.Printf("Step 3/4: Generating styled outputs...\n")
	client, err := llm.NewGeminiClient(ctx, llm.DefaultGeminiConfig(), opts.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	enriched := enrichment.EnrichReferenceStyles(ctx, client, request.ReferenceStyle)
	request.ReferenceStyle = enriched
	if opts.Verbose {
		printer.PrintEnrichedStyles(enriched)
	}
	emitProgress(&opts, db.StepEnrichedStyles,
		fmt.Sprintf("Enriched %d reference styles", len(enriched)), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepEnrichedStyles, enriched)
	}

	responses, err := generation.TransferStyleEnriched(ctx, client, request, enriched)
	if err != nil {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, db.RunStatusFailed)
		}
		return nil, fmt.Errorf("style transfer failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintResponses(responses)
	}
	emitProgress(&opts, db.StepResponses,
		fmt.Sprintf("Generated %d outputs", len(responses)), nil)
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepResponses, responses)
		if rendered := RenderText(responses); rendered != "" {
			_ = database.SaveTextArtifact(ctx, runID, db.StepRenderedText, rendered)
		}
	}

	result := &RunResult{Request: request, Responses: responses}

	// Step 4: Evaluate outputs (optional)
	if opts.Evaluate {
		fmt.Printf("Step 4/4: Evaluating outputs...\n")
		evaluator := evaluation.NewEvaluator(client)
		result.Scores = evaluator.EvaluateBatch(ctx, request, responses, opts.Model)

		if opts.Verbose {
			for i, scores := range result.Scores {
				schemaName := ""
				if responses[i].OutputSchema != nil {
					schemaName = responses[i].OutputSchema.Name
				}
				printer.PrintEvaluation(schemaName, scores)
			}
		}
		emitProgress(&opts, db.StepEvaluation,
			fmt.Sprintf("Evaluated %d outputs", len(result.Scores)), nil)
		if database != nil && runID != uuid.Nil {
			_ = database.SaveArtifact(ctx, runID, db.StepEvaluation, result.Scores)
		}
	} else {
		fmt.Printf("Step 4/4: Evaluation skipped.\n")
	}

	if opts.OutputPath != "" {
		if err := WriteResult(opts.OutputPath, result); err != nil {
			return nil, err
		}
		fmt.Printf("Results written to %s\n", opts.OutputPath)
	}

	// Mark run as completed
	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, db.RunStatusCompleted)
	}

	fmt.Printf("Done! Generated %d outputs.\n", len(responses))
	return result, nil
}

// RenderText flattens responses into the human-readable text of each output,
// one labeled block per schema. Responses whose payload cannot be parsed are
// skipped.
func RenderText(responses []types.StyleTransferResponse) string {
	var blocks []string
	for _, response := range responses {
		if response.OutputSchema == nil {
			continue
		}
		text, err := schemas.ExtractText(response.OutputSchema.OutputType, response.ProcessedContent)
		if err != nil || text == "" {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("=== %s ===\n%s", response.OutputSchema.Name, text))
	}
	return strings.Join(blocks, "\n\n")
}

// WriteResult serializes a run result to a JSON file.
func WriteResult(path string, result *RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result to %s: %w", path, err)
	}
	return nil
}
