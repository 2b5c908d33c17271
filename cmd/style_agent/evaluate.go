package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/style-transfer/internal/db"
	"github.com/jonathan/style-transfer/internal/evaluation"
	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/observability"
	"github.com/jonathan/style-transfer/internal/pipeline"
	"github.com/jonathan/style-transfer/internal/types"
)

var evaluateCommand = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate previously generated responses against their request",
	Long: `Scores generated responses across four dimensions: style fidelity, content preservation, content quality, and platform appropriateness.

The request and responses come either from files (--request and --responses) or from a stored run (--run-id). The responses file may be the output of 'run' ({"responses": [...]}), a bare JSON array of responses, or a single response object. With --run-id the scores are also saved back to the run.`,
	RunE: runEvaluateCmd,
}

var (
	evalRequestPath   string
	evalResponsesPath string
	evalRunID         string
	evalDBURL         string
	evalOutput        string
	evalModel         string
	evalAPIKey        string
	evalVerbose       bool
)

func init() {
	evaluateCommand.Flags().StringVarP(&evalRequestPath, "request", "r", "", "Path to the original request JSON file (mutually exclusive with --run-id)")
	evaluateCommand.Flags().StringVar(&evalResponsesPath, "responses", "", "Path to the responses JSON file (mutually exclusive with --run-id)")
	evaluateCommand.Flags().StringVar(&evalRunID, "run-id", "", "Load the request and responses of a stored run instead of files")
	evaluateCommand.Flags().StringVar(&evalDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	evaluateCommand.Flags().StringVarP(&evalOutput, "output", "o", "", "Path to write evaluation results to (optional, defaults to stdout)")
	evaluateCommand.Flags().StringVarP(&evalModel, "model", "m", "", "Model tier for judging: lite, standard, advanced")
	evaluateCommand.Flags().StringVar(&evalAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	evaluateCommand.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print formatted score boxes")

	rootCmd.AddCommand(evaluateCommand)
}

// parseResponses decodes a responses file. Accepted shapes, tried in order:
// an object with a "responses" array, a bare array, a single response object.
func parseResponses(data []byte) ([]types.StyleTransferResponse, error) {
	var wrapper struct {
		Responses []types.StyleTransferResponse `json:"responses"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Responses) > 0 {
		return wrapper.Responses, nil
	}

	var list []types.StyleTransferResponse
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}

	var single types.StyleTransferResponse
	if err := json.Unmarshal(data, &single); err == nil && single.ProcessedContent != "" {
		return []types.StyleTransferResponse{single}, nil
	}

	return nil, fmt.Errorf("responses file contains no recognizable responses")
}

func runEvaluateCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Exactly one input source: files or a stored run
	if evalRunID == "" && (evalRequestPath == "" || evalResponsesPath == "") {
		return fmt.Errorf("either --run-id or both --request and --responses must be provided")
	}
	if evalRunID != "" && (evalRequestPath != "" || evalResponsesPath != "") {
		return fmt.Errorf("--run-id and --request/--responses are mutually exclusive; provide only one source")
	}

	apiKey := evalAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	var (
		request   *types.StyleTransferRequest
		responses []types.StyleTransferResponse
		database  *db.DB
		runID     uuid.UUID
	)

	if evalRunID != "" {
		var err error
		runID, err = uuid.Parse(evalRunID)
		if err != nil {
			return fmt.Errorf("invalid run ID format: %w", err)
		}

		dbURL := resolveDatabaseURL(evalDBURL)
		if dbURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required with --run-id")
		}

		database, err = db.Connect(ctx, dbURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		request, err = database.GetRequestByRunID(ctx, runID)
		if err != nil {
			return err
		}
		if request == nil {
			return fmt.Errorf("no stored request for run %s", runID)
		}

		responses, err = database.GetResponsesByRunID(ctx, runID)
		if err != nil {
			return err
		}
		if len(responses) == 0 {
			return fmt.Errorf("no stored responses for run %s", runID)
		}
	} else {
		var err error
		request, err = pipeline.LoadRequest(evalRequestPath)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(evalResponsesPath)
		if err != nil {
			return fmt.Errorf("failed to read responses file %s: %w", evalResponsesPath, err)
		}
		responses, err = parseResponses(data)
		if err != nil {
			return err
		}
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	evaluator := evaluation.NewEvaluator(client)
	scores := evaluator.EvaluateBatch(ctx, request, responses, evalModel)

	if database != nil {
		if err := database.SaveArtifact(ctx, runID, db.StepEvaluation, scores); err != nil {
			fmt.Printf("Warning: Failed to save evaluation artifact: %v\n", err)
		}
	}

	if evalVerbose {
		printer := observability.NewPrinter(os.Stdout)
		for i, results := range scores {
			schemaName := ""
			if responses[i].OutputSchema != nil {
				schemaName = responses[i].OutputSchema.Name
			}
			printer.PrintEvaluation(schemaName, results)
		}
	}

	out, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize evaluation results: %w", err)
	}

	if evalOutput != "" {
		if err := os.WriteFile(evalOutput, out, 0o644); err != nil {
			return fmt.Errorf("failed to write evaluation results to %s: %w", evalOutput, err)
		}
		fmt.Printf("Evaluation results written to %s\n", evalOutput)
		return nil
	}

	fmt.Println(string(out))
	return nil
}
