// Package generation dispatches schema-constrained generation calls and
// assembles style transfer responses.
package generation

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/style-transfer/internal/enrichment"
	"github.com/jonathan/style-transfer/internal/llm"
	"github.com/jonathan/style-transfer/internal/prompting"
	"github.com/jonathan/style-transfer/internal/schemas"
	"github.com/jonathan/style-transfer/internal/types"
)

// TransferStyle produces one response per entry in the request's target
// schemas (a single generic text schema when none are given). Schemas are
// dispatched concurrently; the returned slice preserves the input order of
// target_schemas regardless of completion order. Any single dispatch failure
// fails the whole batch with the offending schema's name.
func TransferStyle(ctx context.Context, client llm.Client, request *types.StyleTransferRequest) ([]types.StyleTransferResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	// Enrich once; every schema shares the same enriched styles.
	enrichedStyles := enrichment.EnrichReferenceStyles(ctx, client, request.ReferenceStyle)
	return dispatchAll(ctx, client, request, enrichedStyles)
}

// TransferStyleEnriched is TransferStyle for callers that already hold
// enriched reference styles, so enrichment is not run a second time.
func TransferStyleEnriched(ctx context.Context, client llm.Client, request *types.StyleTransferRequest, enrichedStyles []types.ReferenceStyle) ([]types.StyleTransferResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	return dispatchAll(ctx, client, request, enrichedStyles)
}

func dispatchAll(ctx context.Context, client llm.Client, request *types.StyleTransferRequest, enrichedStyles []types.ReferenceStyle) ([]types.StyleTransferResponse, error) {
	outputSchemas := request.ResolveSchemas()

	responses := make([]types.StyleTransferResponse, len(outputSchemas))

	g, gCtx := errgroup.WithContext(ctx)
	for i, outputSchema := range outputSchemas {
		i, outputSchema := i, outputSchema
		g.Go(func() error {
			response, err := dispatchOne(gCtx, client, request, enrichedStyles, outputSchema)
			if err != nil {
				return err
			}
			responses[i] = *response
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

// dispatchOne runs a single schema-constrained generation and assembles its
// response record.
func dispatchOne(ctx context.Context, client llm.Client, request *types.StyleTransferRequest, enrichedStyles []types.ReferenceStyle, outputSchema types.OutputSchema) (*types.StyleTransferResponse, error) {
	spec, err := schemas.Lookup(outputSchema.OutputType)
	if err != nil {
		return nil, &GenerationError{Schema: outputSchema.Name, Message: "unresolvable output type", Cause: err}
	}

	prompt := prompting.BuildGenerationPrompt(outputSchema, enrichedStyles, request.Intent, request.Focus, request.TargetContent)

	raw, err := client.GenerateStructured(ctx, prompting.SystemInstruction(), prompt, spec.ResponseSchema, spec.MaxTokens, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Schema: outputSchema.Name, Message: "generation call failed", Cause: err}
	}

	payload, err := schemas.ParsePayload(outputSchema.OutputType, raw)
	if err != nil {
		return nil, &GenerationError{Schema: outputSchema.Name, Message: "malformed structured output", Cause: err}
	}

	if err := schemas.EnforceLength(outputSchema, payload); err != nil {
		return nil, &GenerationError{Schema: outputSchema.Name, Message: "length constraint violated", Cause: err}
	}

	processed, err := json.Marshal(payload)
	if err != nil {
		return nil, &GenerationError{Schema: outputSchema.Name, Message: "failed to serialize payload", Cause: err}
	}

	appliedStyle := "Unknown"
	if len(enrichedStyles) > 0 {
		appliedStyle = enrichedStyles[0].Name
	}

	return &types.StyleTransferResponse{
		ProcessedContent: string(processed),
		AppliedStyle:     appliedStyle,
		OutputSchema:     &outputSchema,
		Metadata: map[string]any{
			"reference_styles_used": len(enrichedStyles),
			"target_documents_used": len(request.TargetContent),
			"focus":                 request.Focus,
			"intent":                request.Intent,
			"schema_name":           outputSchema.Name,
		},
	}, nil
}

// GenerationError represents a failed dispatch for one output schema.
type GenerationError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed for schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed for schema %s: %s", e.Schema, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
